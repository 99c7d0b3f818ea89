// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"cliphaus/video-finder/aws"
	"cliphaus/video-finder/db"
	"cliphaus/video-finder/middleware"
	"cliphaus/video-finder/security"
	"cliphaus/video-finder/service"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"
	"github.com/go-redis/redis/v8"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Argon   *security.ArgonHash
	S3      *aws.S3Client
	Redis   *redis.Client
	store   persist.CacheStore
	started time.Time
}

func NewRouter() (*API, error) {
	a := &API{
		started: time.Now(),
	}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = database

	makeLogger()

	if viper.GetString("cache.store") == "redis" {
		a.Redis = redis.NewClient(&redis.Options{
			Addr: viper.GetString("cache.redis_addr"),
		})
		a.store = persist.NewRedisStore(a.Redis)
	} else {
		a.store = persist.NewMemoryStore(time.Minute)
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000", "https://www.videofinding.com"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	jwt := middleware.NewJWTMiddleware(database)
	authLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 2,
		Burst:             5,
	})

	// GET / 			-> Basic server banner
	router.GET("/", a.Root)

	// GET /health 			-> Uptime and status
	router.GET("/health", a.Health)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates a JWT token
		main.HEAD("/validate", jwt, a.Validate)

		// GET /api/users		-> Placeholder user list
		main.GET("/users", a.UserList)

		// POST /api/users		-> Placeholder user create
		main.POST("/users", middleware.BodySizeLimiter(1<<20), a.UserCreate)

		// GET /api/db-test		-> Database connectivity status
		main.GET("/db-test", a.DBTest)

		// GET /api/cache-test		-> Cache store connectivity status
		main.GET("/cache-test", a.CacheTest)
	}

	bucket := main.Group("/bucket")
	{
		// GET /api/bucket/bucketdata	-> Flat list of every object key in the bucket
		bucket.GET("/bucketdata", a.cacheFor(30), a.BucketList)

		// DELETE /api/bucket/deletefile -> Deletes a file and its thumbnail
		bucket.DELETE("/deletefile", middleware.BodySizeLimiter(1<<20), a.BucketDelete)
	}

	storage := main.Group("/storage", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/storage/s3_input	-> Issues a presigned upload URL
		storage.POST("/s3_input", a.StoragePresign)
	}

	v1 := main.Group("/v1")
	{
		// POST /api/v1/video_ai	-> Forwards a prompt to the AI agent
		v1.POST("/video_ai", middleware.BodySizeLimiter(1<<20), a.VideoAI)
	}

	auth := main.Group("/auth", authLimiter, middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/signin	-> Logs in a user and returns a JWT token
		auth.POST("/signin", a.AuthSignin)

		// POST /api/auth/signup	-> Registers a new user
		auth.POST("/signup", a.AuthSignup)

		// POST /api/auth/send-verification -> Issues a fresh email verification token
		auth.POST("/send-verification", a.SendVerification)

		// GET /api/auth/verify-email	-> Marks an account verified
		auth.GET("/verify-email", a.VerifyEmail)
	}

	a.Argon = security.New()

	s3, err := aws.NewS3()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
	}
	a.S3 = s3

	service.TokenCleanup(time.Hour, database)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func (a *API) cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(a.store, time.Second*time.Duration(sec))
}
