package routes

import (
	authapi "creatorhub/internal/api/auth"
	creatorsapi "creatorhub/internal/api/creators"
	postsapi "creatorhub/internal/api/posts"
	subscriptionsapi "creatorhub/internal/api/subscriptions"
	tiersapi "creatorhub/internal/api/tiers"
	"creatorhub/internal/app/http/middleware"
	"creatorhub/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	// Creator public surface; anonymous is a legal viewer here
	public.GET("/creators/:handle", creatorsapi.GetCreatorByHandle)
	public.GET("/creators/:handle/tiers", creatorsapi.ListCreatorTiers)
	public.GET("/creators/:handle/posts", creatorsapi.ListCreatorPublicPosts)

	// Gated reads resolve the viewer when a token is present
	viewer := r.Group("/")
	viewer.Use(middleware.OptionalAuthMiddleware())
	viewer.GET("/posts/:id", postsapi.GetPost)
	viewer.GET("/posts/:id/access", postsapi.CheckPostAccess)
	viewer.GET("/files/:id/download", postsapi.DownloadFile)
	viewer.GET("/tiers/:id/rank", tiersapi.GetTierRank)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeInputMiddleware())
	auth.GET("/me", authapi.GetCurrentUser)
	auth.PUT("/me", authapi.UpdateProfile)

	auth.GET("/subscriptions", subscriptionsapi.ListMine)
	auth.POST("/subscriptions/expire-due", subscriptionsapi.ExpireDue)

	// Member capability
	member := auth.Group("/")
	member.Use(middleware.RequireCapability(users.CapMember))
	member.POST("/subscriptions", subscriptionsapi.Subscribe)
	member.POST("/subscriptions/:id/upgrade", subscriptionsapi.Upgrade)
	member.DELETE("/subscriptions/:id", subscriptionsapi.Cancel)

	// Creator capability
	creator := auth.Group("/")
	creator.Use(middleware.RequireCapability(users.CapCreator))
	creator.GET("/tiers", tiersapi.ListMyTiers)
	creator.POST("/tiers", tiersapi.CreateTier)
	creator.PUT("/tiers/:id", tiersapi.UpdateTier)
	creator.DELETE("/tiers/:id", tiersapi.DeleteTier)

	creator.GET("/posts", postsapi.ListMyPosts)
	creator.POST("/posts", postsapi.CreatePost)
	creator.PUT("/posts/:id", postsapi.UpdatePost)
	creator.DELETE("/posts/:id", postsapi.DeletePost)
	creator.POST("/posts/:id/files", postsapi.AddFile)

	creator.GET("/dashboard/stats", creatorsapi.GetMyStats)
	creator.GET("/dashboard/subscribers", creatorsapi.ListMySubscribers)
}
