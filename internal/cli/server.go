package cli

import (
	"catalogue/internal/auth"
	"catalogue/internal/client"
	"catalogue/internal/config"
	"catalogue/internal/course"
	"catalogue/internal/metrics"
	"catalogue/internal/middleware"
	"catalogue/internal/user"
	"catalogue/internal/web"
	"catalogue/internal/webservice"
	"context"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/juju/errors"
	"net/http"
)

// application is everything a router needs, assembled from configuration.
type application struct {
	config   *config.Config
	courses  course.Service
	auth     auth.Service
	frontend bool
	close    func() error
}

// newApplication opens storage, creates the configured accounts and preloads
// the sample courses. In frontend mode courses come from the remote backend
// and only the accounts live locally.
func newApplication(ctx context.Context, c *config.Config, frontend bool) (*application, error) {
	app := &application{config: c, frontend: frontend}

	var users user.Service
	if frontend {
		if c.Backend.URL == "" {
			return nil, errors.New("backend.url is required with --frontend")
		}
		users = user.NewServiceImpl(user.NewMemoryRepository())
		app.courses = course.NewLoggingService(client.NewCourseClient(c.Backend))
		app.close = func() error { return nil }
	} else {
		store, err := openStorage(ctx, c.Database)
		if err != nil {
			return nil, err
		}
		users = user.NewServiceImpl(store.users)
		app.courses = course.NewLoggingService(course.NewServiceImpl(store.courses))
		app.close = store.close
	}

	if err := users.EnsureUsers(ctx, c.Security.Users); err != nil {
		_ = app.close()
		return nil, errors.Annotate(err, "creating configured users")
	}
	app.auth = auth.NewServiceImpl(users, c.JWT)

	if !frontend && c.Database.Seed {
		seeded, err := course.SeedIfEmpty(ctx, app.courses)
		if err != nil {
			_ = app.close()
			return nil, errors.Annotate(err, "preloading courses")
		}
		if seeded {
			logger.Infof("preloaded %d sample courses", len(course.SampleCourses))
		}
	}
	return app, nil
}

func (a *application) router() *gin.Engine {
	router := gin.New()
	collector := metrics.NewCollector()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		collector.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     a.config.CORS.AllowOrigins,
			AllowMethods:     a.config.CORS.AllowMethods,
			AllowHeaders:     a.config.CORS.AllowHeaders,
			ExposeHeaders:    a.config.CORS.ExposeHeaders,
			AllowCredentials: a.config.CORS.AllowCredentials,
		}),
	)
	router.SetHTMLTemplate(web.Templates())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", collector.Handler())

	limiter := middleware.NewRateLimiter(a.config.RateLimit.LoginPerSecond, a.config.RateLimit.LoginBurst)
	auth.NewControllerImpl(a.auth).RegisterRoutes(router, limiter.Limit())

	protected := router.Group("/", auth.Middleware(a.auth))
	web.NewControllerImpl(a.courses).RegisterRoutes(protected)
	if a.frontend {
		return router
	}

	courseController := course.NewControllerImpl(a.courses)
	courseController.RegisterDocs(router)
	courseController.RegisterRoutes(protected, auth.RequireRole(user.RoleAdmin))

	endpoint := webservice.NewEndpoint(a.courses, func(c *gin.Context) bool {
		return auth.HasRole(c, user.RoleAdmin)
	})
	endpoint.RegisterDocs(router)
	endpoint.RegisterRoutes(protected)
	return router
}
