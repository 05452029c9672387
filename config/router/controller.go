package router

import (
	"fmt"
	"net/http"
	"path"

	"github.com/akeren/interest-waitlist/pkg/ratelimit"
)

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanPath(mountPoint),
		prepare:    prepare,
	}
}

func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanPath(version, mountPoint),
		version:    version,
		prepare:    prepare,
	}
}

// cleanPath joins segments into a rooted path without a trailing slash.
// Gin parameters such as ":id" pass through unchanged.
func cleanPath(segments ...string) string {
	return path.Join(append([]string{"/"}, segments...)...)
}

func handlerKey(fullPath, method string) string {
	return method + "-" + fullPath
}

// RateLimitWith applies limiter to every handler of the controller without a
// handler-level override.
func (controller *RESTController) RateLimitWith(routerService *RouterService, limiter ratelimit.RateLimiter) *RESTController {
	routerService.bindOverrideRateLimiter(controller.mountPoint, limiter)
	return controller
}

// bindOverrideRateLimiter panics on a second limiter for the same key; routes
// are wired once at startup.
func (routerService *RouterService) bindOverrideRateLimiter(key string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}
	if _, taken := routerService.rateLimitOverrides[key]; taken {
		panic(fmt.Sprintf("rate limiter already registered for %q", key))
	}
	routerService.rateLimitOverrides[key] = limiter
}

// AbortWithResult stops the chain and writes result in the handler envelope.
func AbortWithResult(c *RequestContext, result *ServiceResult) {
	c.AbortWithStatusJSON(result.StatusCode, result.ToJSON())
}

func render(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil {
			result = InternalServerErrorResult("Internal server error")
		}
		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func (routerService *RouterService) addHandler(
	method string,
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	relativePath string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	fullPath := cleanPath(controller.mountPoint, relativePath)
	key := handlerKey(fullPath, method)

	if other, taken := routerService.handlerToControllerMap[key]; taken {
		panic(fmt.Sprintf("handler for %s %s already registered by controller %q", method, fullPath, other.name))
	}
	routerService.handlerToControllerMap[key] = controller
	routerService.bindOverrideRateLimiter(key, limiter)
	controller.handlerCount++

	routerService.engine.Handle(method, fullPath, append(middlewares, render(handler))...)
	routerService.logger.Debug("Handler registered", "method", method, "path", fullPath)
}

func (routerService *RouterService) AddGetHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodGet, controller, limiter, relativePath, handler, middlewares...)
}

func (routerService *RouterService) AddPostHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodPost, controller, limiter, relativePath, handler, middlewares...)
}

func (routerService *RouterService) AddDeleteHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodDelete, controller, limiter, relativePath, handler, middlewares...)
}
