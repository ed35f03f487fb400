package middlewares

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"tix/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// AuthMiddleware resolves the bearer token to an opaque user id. Identity is
// owned elsewhere; the subject claim is all the core needs.
func AuthMiddleware(ctx *gin.Context) {
	bearerToken := ctx.Request.Header.Get("Authorization")
	if !strings.HasPrefix(bearerToken, "Bearer") {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	parts := strings.Split(bearerToken, " ")
	if len(parts) != 2 || parts[1] == "" {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	reqToken := parts[1]
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return jwtKey, nil
	})
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if !tkn.Valid {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	uid, err := strconv.Atoi(claims.Subject)
	if err != nil || uid < 1 {
		log.Println("error parsing claims subject:", claims.Subject)
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	ctx.Set("id", uint(uid))
	ctx.Set("uid", claims.UID)
}

// GenerateJWT signs a token for the given user id with the process secret.
func GenerateJWT(username string, userId uint) (string, error) {
	claims := types.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userId), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}
