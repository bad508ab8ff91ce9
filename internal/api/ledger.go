package api

import (
	"bytes"                              // CSV buffer
	"context"                            // Context for Redis operations
	"fmt"                                // Message formatting
	"net/http"                           // HTTP status codes
	"savings_ledger/internal/analytics"  // Savings ratio
	"savings_ledger/internal/domain"     // Importing domain models
	"savings_ledger/internal/export"     // CSV backup
	"savings_ledger/internal/ledger"     // Ledger engine
	"savings_ledger/internal/middleware" // Authenticated user
	"savings_ledger/internal/render"     // Text report
	"savings_ledger/internal/store"      // User store
	"savings_ledger/internal/utils"      // Utility functions
	"strconv"                            // String conversion
	"strings"                            // Source parsing
	"time"                               // Timestamps

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// MoneyRequest represents a deposit or withdrawal request
type MoneyRequest struct {
	Amount float64 `json:"amount"`                 // Amount, must be a positive integer
	Note   string  `json:"note" binding:"max=120"` // Optional note, max=domain.MaxNoteLength
	Goal   string  `json:"goal"`                   // Goal name, empty for the main balance
}

// CreateGoalRequest represents a new savings goal
type CreateGoalRequest struct {
	Name   string  `json:"name" binding:"required"` // Unique goal name
	Target float64 `json:"target"`                  // Target amount, must be a positive integer
}

// currentUser returns the authenticated user ID or aborts with unauthorized
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c) // Get userID from context
	if !ok {
		// If not, return unauthorized
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// handleFor builds the ledger handle addressed by a request
func handleFor(userID, goal string) ledger.Handle {
	if strings.TrimSpace(goal) == "" {
		return ledger.Main(userID) // Main balance
	}
	return ledger.GoalOf(userID, goal) // Named goal
}

// invalidate drops every cached response of a user after a mutation
func invalidate(cache *utils.Cache, userID string) {
	if err := cache.DeleteNamespace(context.Background(), utils.LedgerKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // User ID
			"error":   err.Error(), // Error message
		}).Warn("Cache invalidation failed")
	}
}

// bindMoney decodes a MoneyRequest and validates its amount
func bindMoney(c *gin.Context) (MoneyRequest, int64, bool) {
	var req MoneyRequest // Bind JSON request to struct
	if err := c.ShouldBindJSON(&req); err != nil {
		// If invalid, return bad request
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return req, 0, false
	}
	amount, err := ledger.AmountFromFloat(req.Amount) // Reject fractions and non-positive values
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, 0, false
	}
	return req, amount, true
}

// DepositHandler credits the main balance or a goal
func DepositHandler(eng *ledger.Engine, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		req, amount, ok := bindMoney(c)
		if !ok {
			return
		}
		h := handleFor(userID, req.Goal)             // Target account
		res, err := eng.Deposit(h, amount, req.Note) // Apply deposit policy
		if err != nil {
			writeError(c, userID, err)
			return
		}
		// Log successful deposit
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,                                         // User ID
			"source":    h.String(),                                     // Account
			"amount":    amount,                                         // Deposit amount
			"type":      "deposit",                                      // Transaction type
			"timestamp": res.Transaction.Timestamp.Format(time.RFC3339), // Entry time
		}).Info("Deposit transaction")
		invalidate(cache, userID) // Invalidate cached balances and history
		message := "Deposit successful"
		if res.Completed {
			message = fmt.Sprintf("Goal '%s' reached!", res.Goal) // Registered goal name
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": message, "result": res})
	}
}

// WithdrawHandler debits the main balance or a goal under the yearly rule
func WithdrawHandler(eng *ledger.Engine, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		req, amount, ok := bindMoney(c)
		if !ok {
			return
		}
		h := handleFor(userID, req.Goal)                         // Source account
		res, err := eng.Withdraw(h, amount, req.Note, eng.Now()) // Apply withdrawal policy
		if err != nil {
			writeError(c, userID, err)
			return
		}
		// Log successful withdrawal
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,                                         // User ID
			"source":    h.String(),                                     // Account
			"requested": res.Requested,                                  // Requested amount
			"amount":    res.Withdrawn,                                  // Withdrawn amount
			"partial":   res.Partial,                                    // Capped to balance
			"type":      "withdrawal",                                   // Transaction type
			"timestamp": res.Transaction.Timestamp.Format(time.RFC3339), // Entry time
		}).Info("Withdrawal transaction")
		invalidate(cache, userID) // Invalidate cached balances and history
		message := "Withdrawal successful"
		switch {
		case res.Partial:
			message = "Main balance insufficient, the available balance was withdrawn"
		case h.Kind == ledger.GoalAccount:
			message = fmt.Sprintf("Withdrew %d%% of goal '%s'", ledger.GoalWithdrawPercent, res.Goal)
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": message, "result": res})
	}
}

// SummaryHandler returns the main balance and every goal's progress
func SummaryHandler(eng *ledger.Engine, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		ctx := context.Background()                      // Context for Redis operations
		cacheKey := utils.LedgerEntry(userID, "summary") // Cache key for the summary
		var summary domain.Summary                       // Summary struct to hold data
		// If found in cache, return it
		if found, err := cache.Get(ctx, cacheKey, &summary); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"summary": summary, "cached": true})
			return
		}
		// Read and cache under the engine lock so a later mutation always
		// invalidates after this write
		err := eng.Inspect(userID, func(b *ledger.Book) error {
			summary = b.Summary()
			_ = cache.Set(ctx, cacheKey, summary) // Cache the summary
			return nil
		})
		if err != nil {
			writeError(c, userID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary, "cached": false}) // Return summary
	}
}

// SourcesHandler lists the accounts a transaction can use
func SourcesHandler(eng *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		src, err := eng.Sources(userID) // Main plus active goals
		if err != nil {
			writeError(c, userID, err)
			return
		}
		c.JSON(http.StatusOK, src)
	}
}

// TransactionHistoryHandler returns one account's transactions in chronological order
func TransactionHistoryHandler(eng *ledger.Engine, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		h := handleFor(userID, c.Query("goal")) // Account to list
		page := 1                               // Default page
		pageSize := 20                          // Default page size
		// If page exists in query
		if p := c.Query("page"); p != "" {
			// Convert page to integer
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			// Convert page_size to integer
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		// Redis cache key
		cacheKey := utils.LedgerEntry(userID, "tx", strings.ToLower(h.String()), "page", strconv.Itoa(page), "size", strconv.Itoa(pageSize))
		ctx := context.Background() // Context for Redis operations
		var cached struct {
			Transactions []domain.Transaction `json:"transactions"` // List of transactions
			Page         int                  `json:"page"`         // Current page
			PageSize     int                  `json:"page_size"`    // Page size
			Total        int                  `json:"total"`        // Total transactions
			TotalPages   int                  `json:"total_pages"`  // Total pages
		}
		// If found in cache, return it
		if found, err := cache.Get(ctx, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"transactions": cached.Transactions, // Cached transactions
				"page":         cached.Page,         // Current page
				"page_size":    cached.PageSize,     // Page size
				"total":        cached.Total,        // Total transactions
				"total_pages":  cached.TotalPages,   // Total pages
				"cached":       true,
			})
			return
		}
		var resp gin.H
		// Page and cache under the engine lock, like the summary
		err := eng.Inspect(userID, func(b *ledger.Book) error {
			all, err := b.History(h) // Full log of the account
			if err != nil {
				return err
			}
			total := len(all)                               // Total count of transactions
			totalPages := (total + pageSize - 1) / pageSize // Calculate total pages
			start := min((page-1)*pageSize, total)          // Calculate offset
			end := min(start+pageSize, total)               // End of the page
			resp = gin.H{
				"transactions": all[start:end], // List of transactions
				"page":         page,           // Current page
				"page_size":    pageSize,       // Page size
				"total":        total,          // Total transactions
				"total_pages":  totalPages,     // Total pages
				"cached":       false,          // Not from cache
			}
			_ = cache.Set(ctx, cacheKey, resp) // Cache the result
			return nil
		})
		if err != nil {
			writeError(c, userID, err)
			return
		}
		c.JSON(http.StatusOK, resp) // Return transaction history
	}
}

// ListGoalsHandler returns every goal in creation order
func ListGoalsHandler(eng *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		goals, err := eng.Goals(userID)
		if err != nil {
			writeError(c, userID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"goals": goals})
	}
}

// ActiveGoalsHandler returns the goals that still accept deposits
func ActiveGoalsHandler(eng *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		goals, err := eng.ActiveGoals(userID)
		if err != nil {
			writeError(c, userID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"goals": goals})
	}
}

// CreateGoalHandler registers a new savings goal
func CreateGoalHandler(eng *ledger.Engine, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req CreateGoalRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		target, err := ledger.AmountFromFloat(req.Target) // Targets follow amount rules
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		goal, err := eng.CreateGoal(userID, req.Name, target)
		if err != nil {
			writeError(c, userID, err)
			return
		}
		// Log goal creation
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // User ID
			"goal":    goal.Name,   // Goal name
			"target":  goal.Target, // Target amount
		}).Info("Goal created")
		invalidate(cache, userID) // Summary now lists the goal
		c.JSON(http.StatusCreated, gin.H{"message": "Goal created", "goal": goal})
	}
}

// DeleteGoalHandler removes a goal; its balance and history are discarded
func DeleteGoalHandler(eng *ledger.Engine, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		name := c.Param("name") // Goal name from path
		// Deleting discards money, so it must be confirmed explicitly
		if c.Query("confirm") != "true" {
			c.JSON(http.StatusConflict, gin.H{"error": "Confirmation required: repeat with ?confirm=true"})
			return
		}
		if err := eng.DeleteGoal(userID, name); err != nil {
			writeError(c, userID, err)
			return
		}
		// Log goal deletion
		logrus.WithFields(logrus.Fields{
			"user_id": userID, // User ID
			"goal":    name,   // Goal name
		}).Warn("Goal deleted with its balance and history")
		invalidate(cache, userID) // Drop cached views
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Goal '%s' deleted", name)})
	}
}

// AnalyticsHandler returns the withdrawn/deposited ratio
func AnalyticsHandler(eng *ledger.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var rep analytics.Report
		err := eng.Inspect(userID, func(b *ledger.Book) error {
			rep = analytics.Ratio(b) // Aggregate under the engine lock
			return nil
		})
		if err != nil {
			writeError(c, userID, err)
			return
		}
		c.JSON(http.StatusOK, rep)
	}
}

// ExportHandler returns the CSV backup as a download
func ExportHandler(eng *ledger.Engine, users *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		user, err := users.User(userID) // Username for the file name
		if err != nil {
			writeError(c, userID, err)
			return
		}
		var buf bytes.Buffer // CSV is rendered before any byte is sent
		err = eng.Inspect(userID, func(b *ledger.Book) error {
			return export.WriteCSV(&buf, b)
		})
		if err != nil {
			writeError(c, userID, err)
			return
		}
		// Log export
		logrus.WithFields(logrus.Fields{
			"user_id": userID,    // User ID
			"bytes":   buf.Len(), // Size of the backup
		}).Info("Backup exported")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(user.Username)))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}

// ReportHandler returns balances and analytics as text, plain or colored
func ReportHandler(eng *ledger.Engine, users *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		user, err := users.User(userID) // Display name
		if err != nil {
			writeError(c, userID, err)
			return
		}
		var (
			summary domain.Summary   // Balances
			rep     analytics.Report // Ratio
		)
		summary, err = eng.Summary(userID)
		if err != nil {
			writeError(c, userID, err)
			return
		}
		err = eng.Inspect(userID, func(b *ledger.Book) error {
			rep = analytics.Ratio(b)
			return nil
		})
		if err != nil {
			writeError(c, userID, err)
			return
		}
		r := render.ForStyle(c.DefaultQuery("style", "plain")) // Plain unless color requested
		c.String(http.StatusOK, render.Report(r, user.Username, summary, rep))
	}
}
