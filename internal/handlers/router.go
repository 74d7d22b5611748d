package handlers

import (
	"context"
	"net/http"
	"slices"
	"strings"

	_ "trivia-api/docs"
	"trivia-api/internal/auth"
	"trivia-api/internal/middleware"
	"trivia-api/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Permissions required by the protected routes.
const (
	PermGetQuestions    = "get:questions"
	PermPostQuestions   = "post:questions"
	PermPatchQuestions  = "patch:questions"
	PermDeleteQuestions = "delete:questions"
)

// Deps are the collaborators the router is built from.
type Deps struct {
	Questions   *services.QuestionService
	Categories  *services.CategoryService
	Quiz        *services.QuizService
	Verifier    auth.Verifier
	Ping        func(ctx context.Context) error
	Metrics     *middleware.Metrics
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// NewRouter registers every route on a fresh engine.
func NewRouter(deps Deps) http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument())
	}
	r.Use(cors.New(corsConfig(deps.CORSOrigins)))

	questionHandler := NewQuestionHandler(deps.Questions, deps.Categories)
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Questions)
	quizHandler := NewQuizHandler(deps.Quiz)
	bankHandler := NewBankHandler(deps.Questions)
	healthHandler := NewHealthHandler(deps.Ping)

	requires := func(permission string) gin.HandlerFunc {
		return middleware.RequiresAuth(deps.Verifier, permission)
	}

	r.GET("/healthz", healthHandler.Live)
	r.GET("/readyz", healthHandler.Ready)
	r.GET("/add", healthHandler.AddForm)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	questions := r.Group("/questions")
	{
		questions.GET("", requires(PermGetQuestions), questionHandler.ListQuestions)
		questions.POST("", requires(PermPostQuestions), questionHandler.CreateOrSearchQuestions)
		questions.GET("/export", requires(PermGetQuestions), bankHandler.ExportBank)
		questions.POST("/import", requires(PermPostQuestions), bankHandler.ImportBank)
		questions.GET("/:id", requires(PermGetQuestions), questionHandler.GetQuestion)
		questions.PATCH("/:id", requires(PermPatchQuestions), questionHandler.UpdateQuestion)
		questions.DELETE("/:id", requires(PermDeleteQuestions), questionHandler.DeleteQuestion)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/:id/questions", categoryHandler.ListCategoryQuestions)
	}

	r.POST("/quizzes", quizHandler.PlayQuiz)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Success: false, Error: http.StatusNotFound, Message: "Not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		if allow := allowedMethods(r.Routes(), c.Request.URL.Path); len(allow) > 0 {
			c.Header("Allow", strings.Join(allow, ", "))
		}
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
			Success: false,
			Error:   http.StatusMethodNotAllowed,
			Message: "Method not allowed",
		})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// allowedMethods lists the methods registered for routes matching path.
func allowedMethods(routes gin.RoutesInfo, path string) []string {
	var methods []string
	for _, route := range routes {
		if matchRoute(route.Path, path) && !slices.Contains(methods, route.Method) {
			methods = append(methods, route.Method)
		}
	}
	slices.Sort(methods)
	return methods
}

func matchRoute(pattern, path string) bool {
	pp := strings.Split(strings.Trim(pattern, "/"), "/")
	ps := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range pp {
		if strings.HasPrefix(seg, "*") {
			return true
		}
		if i >= len(ps) {
			return false
		}
		if !strings.HasPrefix(seg, ":") && seg != ps[i] {
			return false
		}
	}
	return len(pp) == len(ps)
}
