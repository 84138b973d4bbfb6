package controllers

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaikhmoiz3010/pointsolution-server/config"
	"github.com/shaikhmoiz3010/pointsolution-server/models"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ServiceController serves the public service catalog
type ServiceController struct {
	DB *mongo.Client
}

// NewServiceController creates a new service controller
func NewServiceController(db *mongo.Client) *ServiceController {
	return &ServiceController{DB: db}
}

// GetAllServices handles GET /api/services. Active services are
// returned grouped by category.
func (sc *ServiceController) GetAllServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(sc.DB, "services")

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "serviceId", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch services"))
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode services"))
	}

	grouped := make(map[string][]models.Service)
	for _, s := range services {
		grouped[s.Category] = append(grouped[s.Category], s)
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"count":    len(services),
		"services": grouped,
	}))
}

// GetCategories handles GET /api/services/categories
func (sc *ServiceController) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(sc.DB, "services")

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"count": bson.M{"$sum": 1},
			"services": bson.M{"$push": bson.M{
				"name":      "$name",
				"serviceId": "$serviceId",
				"fee":       "$fee",
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch categories"))
	}
	defer cursor.Close(ctx)

	var categories []bson.M
	if err := cursor.All(ctx, &categories); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode categories"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"count":      len(categories),
		"categories": categories,
	}))
}

// GetServicesByCategory handles GET /api/services/category/:category
func (sc *ServiceController) GetServicesByCategory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category := c.Param("category")
	if !models.ValidServiceCategory(category) {
		return c.JSON(http.StatusNotFound, models.Fail("No services found for this category"))
	}

	collection := config.GetCollection(sc.DB, "services")

	opts := options.Find().SetSort(bson.M{"serviceId": 1})
	cursor, err := collection.Find(ctx, bson.M{"category": category, "isActive": true}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch services"))
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to decode services"))
	}

	if len(services) == 0 {
		return c.JSON(http.StatusNotFound, models.Fail("No services found for this category"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{
		"count":    len(services),
		"services": services,
	}))
}

// GetServiceByID handles GET /api/services/id/:id. The path segment may
// be a Mongo ObjectID or a short catalog serviceId letter.
func (sc *ServiceController) GetServiceByID(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := c.Param("id")
	collection := config.GetCollection(sc.DB, "services")

	var service models.Service
	found := false

	if objectIDPattern.MatchString(id) {
		objID, err := primitive.ObjectIDFromHex(id)
		if err == nil {
			if err := collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&service); err == nil {
				found = true
			}
		}
	}

	if !found {
		err := collection.FindOne(ctx, bson.M{
			"serviceId": strings.ToUpper(id),
			"isActive":  true,
		}).Decode(&service)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return c.JSON(http.StatusNotFound, models.Fail("Service not found"))
			}
			return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch service"))
		}
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{"service": service}))
}

// GetService handles GET /api/services/:category/:serviceId
func (sc *ServiceController) GetService(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	category := c.Param("category")
	if decoded, err := url.PathUnescape(category); err == nil {
		category = decoded
	}
	serviceID := c.Param("serviceId")

	collection := config.GetCollection(sc.DB, "services")

	var service models.Service
	var err error

	if objectIDPattern.MatchString(serviceID) {
		objID, idErr := primitive.ObjectIDFromHex(serviceID)
		if idErr != nil {
			return c.JSON(http.StatusBadRequest, models.Fail("Invalid service ID"))
		}
		err = collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&service)
	} else {
		err = collection.FindOne(ctx, bson.M{
			"category":  strings.ToLower(category),
			"serviceId": strings.ToUpper(serviceID),
			"isActive":  true,
		}).Decode(&service)
	}

	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Fail("Service not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to fetch service"))
	}

	return c.JSON(http.StatusOK, models.OK("", echo.Map{"service": service}))
}

// SeedServices handles POST /api/services/seed. Admin only. Replaces
// the whole catalog with the built-in one.
func (sc *ServiceController) SeedServices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.GetCollection(sc.DB, "services")

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to clear existing services"))
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(seedCatalog))
	for _, s := range seedCatalog {
		s.ID = primitive.NewObjectID()
		s.CreatedAt = now
		s.UpdatedAt = now
		docs = append(docs, s)
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Fail("Failed to seed services"))
	}

	return c.JSON(http.StatusOK, models.OK("Services seeded successfully", echo.Map{
		"count": len(result.InsertedIDs),
	}))
}
