package interest

import (
	"github.com/akeren/interest-waitlist/config/router"
	apperrors "github.com/akeren/interest-waitlist/pkg/errors"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
)

// NewInterestController mounts the public signup endpoints at the root.
// submissionLimiter applies to POST /submit-interest only; nil falls back to
// the router default.
func NewInterestController(service InterestService, submissionLimiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewRESTController(
		"InterestController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, submissionLimiter, "submit-interest", submitInterestHandler(service))
			rs.AddGetHandler(c, nil, "interest-count", getInterestCountHandler(service))
		},
	)
}

func submitInterestHandler(service InterestService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubmitInterestRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)

			if details := apperrors.FormatValidationErrors(err, &req); len(details) > 0 {
				return router.BadRequestResult(MsgInvalidRequestPayload, details)
			}

			return router.ErrorResultFromError(newMalformedRequestError(err))
		}

		response, err := service.SubmitInterest(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResultFromError(err)
		}

		return router.CreatedResult(response)
	}
}

func getInterestCountHandler(service InterestService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		response, err := service.GetInterestCount(ctx.Request.Context())
		if err != nil {
			return router.ErrorResultFromError(err)
		}

		return router.OKResult(response)
	}
}
