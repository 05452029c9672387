package interest

import (
	"github.com/akeren/interest-waitlist/config/router"
	apperrors "github.com/akeren/interest-waitlist/pkg/errors"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
)

type deletedSubmission struct {
	ID string `json:"id"`
}

// NewAdminController mounts the bearer-protected submission management
// endpoints under /admin. limiter, when set, covers every admin route.
func NewAdminController(service InterestService, verifier router.TokenVerifier, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewRESTController(
		"InterestAdminController",
		"/admin",
		func(rs *router.RouterService, c *router.RESTController) {
			c.RateLimitWith(rs, limiter)
			requireAdmin := router.BearerAuthMiddleware(verifier)

			rs.AddGetHandler(c, nil, "submissions", listSubmissionsHandler(service), requireAdmin)
			rs.AddDeleteHandler(c, nil, "submissions/:id", deleteSubmissionHandler(service), requireAdmin)
		},
	)
}

func listSubmissionsHandler(service InterestService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var query ListSubmissionsQuery
		if err := ctx.ShouldBindQuery(&query); err != nil {
			logger.Warn("Failed to bind query", "error", err)
			return router.BadRequestResult("Invalid query parameters", apperrors.FormatValidationErrors(err, &query))
		}

		response, err := service.ListSubmissions(ctx.Request.Context(), query.Limit, query.Offset)
		if err != nil {
			return router.ErrorResultFromError(err)
		}

		return router.OKResult(response)
	}
}

func deleteSubmissionHandler(service InterestService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		id, errResult := router.ParseUUIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		if err := service.DeleteSubmission(ctx.Request.Context(), id); err != nil {
			return router.ErrorResultFromError(err)
		}

		logger.Info("Submission removed by admin", "id", id, "principal", router.PrincipalFromContext(ctx.Request.Context()))

		return router.OKResult(deletedSubmission{ID: id})
	}
}
