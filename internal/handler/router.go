package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/netly-app/netly/internal/middleware"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Assets        *AssetHandler
	Liabilities   *LiabilityHandler
	Budget        *BudgetHandler
	Configuration *ConfigurationHandler
	Snapshots     *SnapshotHandler
	Reports       *ReportHandler
	JWTSecret     []byte
	OTPWindow     time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/otp/request", middleware.RateLimit(deps.OTPWindow), deps.Auth.RequestOTP)
	api.POST("/auth/otp/login", deps.Auth.LoginWithOTP)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.GET("/users/me", deps.Users.Profile)
	authGroup.PUT("/users/me", deps.Users.UpdateProfile)
	authGroup.POST("/users/me/email/request", middleware.RateLimit(deps.OTPWindow), deps.Users.RequestEmailChange)
	authGroup.POST("/users/me/secondary-emails/request", middleware.RateLimit(deps.OTPWindow), deps.Users.RequestSecondaryEmail)
	authGroup.POST("/users/me/secondary-emails/confirm", deps.Users.ConfirmSecondaryEmail)
	authGroup.DELETE("/users/me/secondary-emails", deps.Users.RemoveSecondaryEmail)

	authGroup.POST("/assets", deps.Assets.Create)
	authGroup.GET("/assets", deps.Assets.List)
	authGroup.GET("/assets/summary", deps.Assets.Summary)
	authGroup.GET("/assets/:id", deps.Assets.Get)
	authGroup.PUT("/assets/:id", deps.Assets.Update)
	authGroup.DELETE("/assets/:id", deps.Assets.Delete)

	authGroup.POST("/liabilities", deps.Liabilities.Create)
	authGroup.GET("/liabilities", deps.Liabilities.List)
	authGroup.GET("/liabilities/summary", deps.Liabilities.Summary)
	authGroup.GET("/liabilities/:id", deps.Liabilities.Get)
	authGroup.PUT("/liabilities/:id", deps.Liabilities.Update)
	authGroup.DELETE("/liabilities/:id", deps.Liabilities.Delete)

	authGroup.POST("/budget/items", deps.Budget.Create)
	authGroup.GET("/budget/items", deps.Budget.List)
	authGroup.GET("/budget/items/:id", deps.Budget.Get)
	authGroup.GET("/budget/type/:type", deps.Budget.ListByType)
	authGroup.GET("/budget/summary", deps.Budget.Summary)
	authGroup.PUT("/budget/items/:id", deps.Budget.Update)
	authGroup.DELETE("/budget/items/:id", deps.Budget.Delete)

	authGroup.GET("/configuration/currencies", deps.Configuration.ListCurrencyRates)
	authGroup.POST("/configuration/currencies", deps.Configuration.CreateCurrencyRate)
	authGroup.PUT("/configuration/currencies/:id", deps.Configuration.UpdateCurrencyRate)
	authGroup.DELETE("/configuration/currencies/:id", deps.Configuration.DeleteCurrencyRate)
	authGroup.GET("/configuration/asset-types", deps.Configuration.ListAssetTypes)
	authGroup.POST("/configuration/asset-types", deps.Configuration.CreateAssetType)
	authGroup.DELETE("/configuration/asset-types/:id", deps.Configuration.DeleteAssetType)
	authGroup.GET("/configuration/liability-types", deps.Configuration.ListLiabilityTypes)
	authGroup.POST("/configuration/liability-types", deps.Configuration.CreateLiabilityType)
	authGroup.DELETE("/configuration/liability-types/:id", deps.Configuration.DeleteLiabilityType)

	authGroup.POST("/snapshots", deps.Snapshots.Create)
	authGroup.GET("/snapshots", deps.Snapshots.List)
	authGroup.GET("/snapshots/history", deps.Snapshots.History)
	authGroup.GET("/snapshots/history/asset/:id", deps.Snapshots.AssetHistory)
	authGroup.GET("/snapshots/history/asset-type/:name", deps.Snapshots.AssetTypeHistory)
	authGroup.GET("/snapshots/history/liability/:id", deps.Snapshots.LiabilityHistory)
	authGroup.GET("/snapshots/history/liability-type/:name", deps.Snapshots.LiabilityTypeHistory)
	authGroup.GET("/snapshots/:id", deps.Snapshots.Get)
	authGroup.DELETE("/snapshots/:id", deps.Snapshots.Delete)

	authGroup.POST("/reports/portfolio", deps.Reports.SendPortfolio)
	authGroup.POST("/reports/budget", deps.Reports.SendBudget)
}
