package api

import (
	"net/http"                           // HTTP status codes
	"savings_ledger/internal/ledger"     // Ledger engine
	"savings_ledger/internal/middleware" // Custom package for middleware
	"savings_ledger/internal/store"      // User store
	"savings_ledger/internal/utils"      // Cache
	"time"                               // Token lifetime

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators shared by the HTTP handlers
type Deps struct {
	Users     *store.Store   // Registered users and their books
	Engine    *ledger.Engine // Deposit and withdrawal policies
	Cache     *utils.Cache   // Read cache, may be disabled
	JWTSecret string         // JWT secret key
	TokenTTL  time.Duration  // Lifetime of issued tokens
}

// NewRouter registers every route on a new gin engine
func NewRouter(d Deps) (*gin.Engine, error) {
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	// Liveness probe
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/user", RegisterHandler(d.Users))                             // Registration endpoint
	r.POST("/user/login", LoginHandler(d.Users, d.JWTSecret, d.TokenTTL)) // Login endpoint

	// Ledger routes (protected by JWT)
	g := r.Group("/ledger")
	g.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	g.GET("", SummaryHandler(d.Engine, d.Cache))                         // Balances and goal progress
	g.GET("/sources", SourcesHandler(d.Engine))                          // Accounts available for a transaction
	g.POST("/deposit", DepositHandler(d.Engine, d.Cache))                // Deposit endpoint
	g.POST("/withdraw", WithdrawHandler(d.Engine, d.Cache))              // Withdrawal endpoint
	g.GET("/transactions", TransactionHistoryHandler(d.Engine, d.Cache)) // Transaction history endpoint
	g.GET("/goals", ListGoalsHandler(d.Engine))                          // All goals
	g.GET("/goals/active", ActiveGoalsHandler(d.Engine))                 // Goals still accepting deposits
	g.POST("/goals", CreateGoalHandler(d.Engine, d.Cache))               // Create goal endpoint
	g.DELETE("/goals/:name", DeleteGoalHandler(d.Engine, d.Cache))       // Delete goal endpoint
	g.GET("/analytics", AnalyticsHandler(d.Engine))                      // Savings ratio
	g.GET("/export", ExportHandler(d.Engine, d.Users))                   // CSV backup
	g.GET("/report", ReportHandler(d.Engine, d.Users))                   // Text report

	return r, nil
}
