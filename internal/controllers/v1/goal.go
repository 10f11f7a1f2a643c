package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wolf-negro/bolsas-backend/internal/httputil"
	"github.com/wolf-negro/bolsas-backend/internal/models"
	"github.com/wolf-negro/bolsas-backend/internal/types"
)

// RegisterGoalRoutes registers the routes for the savings goal with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsGoal)
	r.GET("", GetGoal)
	r.PATCH("", UpdateGoal)
}

// OptionsGoal returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Goal
//	@Success		204
//	@Router			/v1/goal [options]
func OptionsGoal(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// GetGoal returns the savings goal with its progress
//
//	@Summary		Get goal
//	@Description	Returns the savings goal and its progress for a month
//	@Tags			Goal
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	GoalResponse
//	@Failure		500	{object}	GoalResponse
//	@Param			month	query	string	false	"Month in YYYY-MM format, defaults to the current month"
//	@Router			/v1/goal [get]
func GetGoal(c *gin.Context) {
	month := types.MonthOf(time.Now())
	if raw, ok := c.GetQuery("month"); ok {
		var err error
		month, err = types.ParseMonth(raw)
		if err != nil {
			s := errMonthNotParseable.Error()
			c.JSON(http.StatusBadRequest, GoalResponse{
				Error: &s,
			})
			return
		}
	}

	goal, err := models.CurrentGoal(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	progress, err := goal.Progress(models.DB, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	data := newGoal(c, goal, progress)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// UpdateGoal updates the savings goal
//
//	@Summary		Update goal
//	@Description	Updates the target amount and the basis of the savings goal. Only values that are set are updated
//	@Tags			Goal
//	@Produce		json
//	@Success		200	{object}	GoalResponse
//	@Failure		400	{object}	GoalResponse
//	@Failure		404	{object}	GoalResponse
//	@Failure		500	{object}	GoalResponse
//	@Param			goal	body	GoalEditable	true	"Goal"
//	@Router			/v1/goal [patch]
func UpdateGoal(c *gin.Context) {
	var editable GoalEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	goal, err := models.CurrentGoal(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	if editable.TargetAmount != nil {
		err = goal.SetTarget(models.DB, *editable.TargetAmount)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GoalResponse{
				Error: &s,
			})
			return
		}
	}

	if editable.EnvelopeIDs != nil {
		err = goal.SetBasis(models.DB, *editable.EnvelopeIDs)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), GoalResponse{
				Error: &s,
			})
			return
		}
	}

	progress, err := goal.Progress(models.DB, types.MonthOf(time.Now()))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), GoalResponse{
			Error: &s,
		})
		return
	}

	data := newGoal(c, goal, progress)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}
