package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"
	"time"

	"tix/src/boot"
	"tix/src/config"
	"tix/src/middlewares"
	"tix/src/types"
	"tix/src/utils"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

var calendarDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	return err == nil
}

var clockTimeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	clock, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.TIME_PARSE_FORMAT, clock)
	return err == nil
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("calendardate", calendarDateValidatorFunc)
		v.RegisterValidation("clocktime", clockTimeValidatorFunc)
	}
}

func abortWithError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, types.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Unexpected error: %s\n", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	root := g.Group("/")
	return catalogHandlers(root)
}

func authorizedRoutes(g *gin.Engine) *gin.RouterGroup {
	authorized := g.Group("/")
	authorized.Use(middlewares.AuthMiddleware, middlewares.NoStore)
	{
		authorized = cartHandlers(authorized)
		authorized = orderHandlers(authorized)
	}
	return authorized
}

func initLogger() {
	cwd, _ := os.Getwd()
	logdir := path.Join(cwd, "logs")
	os.MkdirAll(logdir, 0o755)
	gin.ForceConsoleColor()

	f, _ := os.Create(path.Join(logdir, "api.log"))
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   path.Join(logdir, "server.log"),
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()
	if utils.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	boot.InitDb()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	registerValidators()

	router = maintenanceModeMiddleware(router)

	publicRoutes(router)
	authorizedRoutes(router)

	if err := router.Run(":9090"); err != nil {
		log.Fatalf("Server failed: %s\n", err.Error())
	}
}
