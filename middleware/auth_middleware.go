// middleware/auth_middleware.go
package middleware

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lykr/lykr_backend/models"
)

// RequireOnboardingComplete blocks access to campaign and lead endpoints
// until the user has finished the onboarding wizard.
func RequireOnboardingComplete(db *mongo.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := ExtractUserID(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication required",
				})
			}

			objID, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid user ID in token",
				})
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			dbName := databaseName()
			var user struct {
				OnboardingDone bool `bson:"onboardingDone"`
			}
			err = db.Database(dbName).Collection("users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "User not found",
				})
			}

			if !user.OnboardingDone {
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Complete onboarding before accessing this resource",
				})
			}

			return next(c)
		}
	}
}

func databaseName() string {
	if name := os.Getenv("DB_NAME"); name != "" {
		return name
	}
	return "lykr"
}
