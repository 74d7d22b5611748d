package auth

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the verified token body. A nil Permissions slice means the token
// carried no permissions claim at all.
type Claims struct {
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Verifier turns a raw bearer token into verified claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

type KeySource interface {
	Fetch(ctx context.Context) (*JSONWebKeySet, error)
}

// JWKSVerifier checks RS256 tokens against a key set fetched on every call.
type JWKSVerifier struct {
	keys     KeySource
	audience string
	issuer   string
}

func NewJWKSVerifier(keys KeySource, audience, issuer string) *JWKSVerifier {
	return &JWKSVerifier{keys: keys, audience: audience, issuer: issuer}
}

func (v *JWKSVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	set, err := v.keys.Fetch(ctx)
	if err != nil {
		return nil, newError(CodeKeyRetrieval, "Unable to retrieve signing keys.", err)
	}

	unverified, _, err := jwt.NewParser().ParseUnverified(rawToken, &Claims{})
	if err != nil {
		return nil, newError(CodeMalformedToken, "Unable to parse authentication token.", err)
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, newError(CodeMalformedToken, "Authorization malformed.", nil)
	}

	jwk, ok := set.Lookup(kid)
	if !ok {
		return nil, newError(CodeUnknownKey, "Unable to find the appropriate key.", nil)
	}
	publicKey, err := jwk.RSAPublicKey()
	if err != nil {
		return nil, newError(CodeUnknownKey, "Unable to use the appropriate key.", err)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	claims := &Claims{}
	_, err = parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (interface{}, error) {
		return publicKey, nil
	})
	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, newError(CodeTokenExpired, "Token expired.", err)
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return nil, newError(CodeInvalidClaims, "Incorrect claims. Please, check the audience and issuer.", err)
	default:
		return nil, newError(CodeMalformedToken, "Unable to parse authentication token.", err)
	}
}

// ExtractBearerToken pulls the token out of an Authorization header value.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", newError(CodeHeaderMissing, "Authorization header is expected.", nil)
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 {
		return "", newError(CodeInvalidHeader, "Authorization header must be a bearer token.", nil)
	}
	if !strings.EqualFold(parts[0], "bearer") {
		return "", newError(CodeWrongType, "Authorization header must start with \"Bearer\".", nil)
	}
	return parts[1], nil
}

// CheckPermission reports whether claims grant permission.
func CheckPermission(claims *Claims, permission string) error {
	if claims == nil || claims.Permissions == nil {
		return newError(CodeNoPermissionData, "Permissions not included in JWT.", nil)
	}
	if !slices.Contains(claims.Permissions, permission) {
		return newError(CodeMissingPermission, "Permission not found.", nil)
	}
	return nil
}
