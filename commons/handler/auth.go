package handler

import (
	"errors"
	"strings"

	"jobtrack/commons/error_handler"
	"jobtrack/commons/response"
	"jobtrack/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errNoActor      = errors.New("token carries no user id")
)

// TokenVerifier checks HS256 bearer tokens and extracts the actor id
type TokenVerifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// Verify returns the userId claim, falling back to sub.
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}

	if userID, ok := claims["userId"].(string); ok && userID != "" {
		return userID, nil
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, nil
	}
	return "", errNoActor
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingToken
	}
	return strings.TrimSpace(token), nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the actor id for BuildRequestIo.
func AuthMiddleware(verifier *TokenVerifier, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			var actor string
			actor, err = verifier.Verify(token)
			if err == nil {
				c.Set(ContextKeyActor, actor)
				c.Next()
				return
			}
		}

		log.WithContext(c.Request.Context()).Warn("authentication failed",
			logger.String("path", c.Request.URL.Path),
			logger.Error(err))

		ec := error_handler.NewErrorCollection().
			Append(error_handler.GetUnauthorizedError("Authentication Invalid"))
		c.AbortWithStatusJSON(ec.GetHTTPStatus(), response.Failure(nil, ec.GetErrors()...))
	}
}
