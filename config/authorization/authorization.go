package authorization

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"MediLink/config/db"
	jwt "MediLink/config/jwt"
	redis "MediLink/config/redis"
	"MediLink/models"
	"MediLink/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Identity is the merged user + role profile attached to the request
// context for downstream handlers.
type Identity struct {
	UserID    string
	Role      models.Role
	ProfileID string
	Name      string
	Email     string
	Profile   map[string]interface{}
}

const IdentityKey = "identity"

/*
* Resolve the bearer token to a user document
* Missing/invalid/expired token aborts 401
* Missing user record aborts 404
* Blocked or deactivated account aborts 403
* Returns false after aborting so callers can bail out
 */
func resolveUser(c *gin.Context) (Identity, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(errors.New(util.MISSING_AUTH_HEADER)))
		return Identity{}, false
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

	claims, err := jwt.VerifyToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(errors.New(util.INVALID_OR_EXPIRED_TOKEN)))
		return Identity{}, false
	}
	role, ok := models.ParseRole(claims.Role)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(errors.New(util.INVALID_OR_EXPIRED_TOKEN)))
		return Identity{}, false
	}

	user := make(map[string]interface{})
	users := db.OpenCollections(util.UserCollection)
	if err := db.FindOne(c, users, bson.M{"id": claims.UserID}, &user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.AbortWithStatusJSON(http.StatusNotFound, util.FailedResponse(errors.New(util.USER_NOT_FOUND)))
			return Identity{}, false
		}
		log.Println("Error from findOne(while fetching user): ", err)
		util.RespondError(c, err)
		c.Abort()
		return Identity{}, false
	}
	if blocked, _ := user["isBlocked"].(bool); blocked {
		c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(errors.New(util.ACCOUNT_BLOCKED)))
		return Identity{}, false
	}
	if active, ok := user["isActive"].(bool); ok && !active {
		c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(errors.New(util.ACCOUNT_INACTIVE)))
		return Identity{}, false
	}

	name, _ := user["name"].(string)
	email, _ := user["email"].(string)
	return Identity{
		UserID: claims.UserID,
		Role:   role,
		Name:   name,
		Email:  email,
	}, true
}

func setIdentity(c *gin.Context, identity Identity) {
	c.Set(IdentityKey, identity)
	c.Set("userId", identity.UserID)
	c.Set("role", string(identity.Role))
	c.Set("profileId", identity.ProfileID)
}

// Authenticate verifies the token and user but does not require a role
// profile yet. Profile create routes mount this one, everything else
// goes through JWTAuth.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := resolveUser(c)
		if !ok {
			return
		}
		setIdentity(c, identity)
		c.Next()
	}
}

/*
* Full identity resolution, token to user to role profile
* Missing profile record aborts 404
* On success the merged identity lands in the context
 */
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := resolveUser(c)
		if !ok {
			return
		}

		kind, _ := models.ProfileKindFor(identity.Role)
		profile, err := resolveProfile(c, kind, identity.UserID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.AbortWithStatusJSON(http.StatusNotFound, util.FailedResponse(errors.New(util.PROFILE_NOT_FOUND)))
				return
			}
			log.Println("Error from resolveProfile: ", err)
			util.RespondError(c, err)
			c.Abort()
			return
		}

		identity.ProfileID, _ = profile["id"].(string)
		identity.Profile = profile
		setIdentity(c, identity)
		c.Next()
	}
}

/*
* Profile lookups run on every authenticated request, so they go through
* the cache first; update paths invalidate by the same userId key
 */
func resolveProfile(c *gin.Context, kind models.ProfileKind, userID string) (map[string]interface{}, error) {
	key := kind.CacheKey + userID
	if cached, found, err := redis.GetCache(c, key); err == nil && found {
		return cached, nil
	}

	profile := make(map[string]interface{})
	collection := db.OpenCollections(kind.Collection)
	if err := db.FindOne(c, collection, bson.M{"userId": userID}, &profile); err != nil {
		return nil, err
	}
	if err := redis.SetCache(c, key, profile); err != nil {
		log.Println("Error from setCache: ", err)
	}
	return profile, nil
}

// Authorize rejects callers whose resolved role is not in the allow-list.
func Authorize(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := CurrentIdentity(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(err))
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(errors.New(util.ROLE_NOT_ALLOWED)))
	}
}

func CurrentIdentity(c *gin.Context) (Identity, error) {
	raw, ok := c.Get(IdentityKey)
	if !ok {
		return Identity{}, errors.New(util.UNABLE_TO_FETCH_IDENTITY)
	}
	identity, ok := raw.(Identity)
	if !ok {
		return Identity{}, errors.New(util.UNABLE_TO_FETCH_IDENTITY)
	}
	return identity, nil
}
