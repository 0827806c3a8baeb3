package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/agrosat-advisor/internal/advisor"
	"github.com/dquispe/agrosat-advisor/internal/identity"
	"github.com/dquispe/agrosat-advisor/internal/meteo"
	"github.com/dquispe/agrosat-advisor/internal/model"
	"github.com/dquispe/agrosat-advisor/internal/recommend"
	"github.com/dquispe/agrosat-advisor/internal/store"
	"github.com/dquispe/agrosat-advisor/internal/weather"
)

var validate = validator.New()

// WeatherLookup is the slice of the weather cache service the handlers need.
type WeatherLookup interface {
	Lookup(ctx context.Context, p weather.Place) (meteo.ForecastPayload, error)
}

// ReverseGeocoder resolves a device coordinate into a place name.
type ReverseGeocoder interface {
	Locate(ctx context.Context, lat, lon float64) (meteo.Place, error)
}

// Deps bundles the collaborators the HTTP handlers depend on.
type Deps struct {
	Recommender *recommend.Service
	Weather     WeatherLookup
	Reverse     ReverseGeocoder
	Crops       *store.CropStore
	Users       *store.UserStore
	Advisor     advisor.Client
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/crops", func(c *fiber.Ctx) error {
		crops, err := deps.Crops.All(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list crops")
		}
		return c.JSON(crops)
	})

	v1.Post("/recommendations", func(c *fiber.Ctx) error {
		var req submitRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.AnonymousID != "" && !identity.ValidAnonymousID(req.AnonymousID) {
			return fiber.NewError(fiber.StatusBadRequest, "anonymous_id must match ANON-YYYY-NNNNNN")
		}

		rec, err := deps.Recommender.Submit(c.Context(), recommend.SubmitInput{
			CropName:     req.CropName,
			Latitude:     *req.Latitude,
			Longitude:    *req.Longitude,
			LocationName: req.LocationName,
			DeviceInfo:   req.DeviceInfo,
			Identity:     identity.Identity{UserID: req.UserID, AnonymousID: req.AnonymousID},
		})
		switch {
		case errors.Is(err, store.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, "unknown crop type")
		case errors.Is(err, store.ErrConstraintViolation):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save recommendation")
		}

		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	v1.Get("/recommendations", func(c *fiber.Ctx) error {
		id := identity.Identity{
			UserID:      c.Query("user_id"),
			AnonymousID: c.Query("anonymous_id"),
		}

		recs, err := deps.Recommender.History(c.Context(), id)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to list recommendations")
		}
		return c.JSON(recs)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		var req weatherQuery
		req.City = c.Query("city")
		req.Region = c.Query("region")
		req.Country = c.Query("country")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		payload, err := deps.Weather.Lookup(c.Context(), weather.Place{
			City:    req.City,
			Region:  req.Region,
			Country: req.Country,
		})
		switch {
		case errors.Is(err, meteo.ErrNoLocationFound):
			return fiber.NewError(fiber.StatusNotFound, "no location found")
		case err != nil:
			// Callers degrade to a fallback message; surface the cause.
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}

		return c.JSON(payload)
	})

	v1.Get("/geo/reverse", func(c *fiber.Ctx) error {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat must be a number")
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lon must be a number")
		}

		place, err := deps.Reverse.Locate(c.Context(), lat, lon)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(place)
	})

	v1.Post("/users", func(c *fiber.Ctx) error {
		var req userRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		u := model.User{ID: req.ID, Email: req.Email, FullName: req.FullName}
		if err := deps.Users.Upsert(c.Context(), &u); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save user")
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	})

	v1.Post("/advice", func(c *fiber.Ctx) error {
		var req adviceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		message, err := deps.Advisor.Advise(c.Context(), advisor.Evaluation{
			CropName:      req.CropName,
			Level:         req.Level,
			Score:         req.Score,
			Temperature:   req.Temperature,
			SoilMoisture:  req.SoilMoisture,
			Precipitation: req.Precipitation,
			LocationName:  req.LocationName,
		})
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"message": message})
	})
}

// submitRequest is one crop/coordinate submission. Latitude and longitude are
// pointers so that 0 (equator, prime meridian) still passes `required`.
type submitRequest struct {
	CropName     string   `json:"crop_name" validate:"required"`
	Latitude     *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	LocationName string   `json:"location_name"`
	DeviceInfo   string   `json:"device_info"`
	UserID       string   `json:"user_id"`
	AnonymousID  string   `json:"anonymous_id"`
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	City    string `validate:"required"`
	Region  string
	Country string `validate:"required"`
}

type userRequest struct {
	ID       string `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
}

type adviceRequest struct {
	CropName      string  `json:"crop_name" validate:"required"`
	Level         string  `json:"feasibility_level" validate:"required,oneof=green yellow red"`
	Score         int     `json:"feasibility_score" validate:"gte=0,lte=100"`
	Temperature   float64 `json:"temperature"`
	SoilMoisture  float64 `json:"soil_moisture"`
	Precipitation float64 `json:"precipitation"`
	LocationName  string  `json:"location_name"`
}
