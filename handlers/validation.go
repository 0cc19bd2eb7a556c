package handlers

import (
	"sync"

	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the custom binding tags used by request types to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.GetLogger().Warn("Gin validator engine is not go-playground/validator, custom tags unavailable")
			return
		}
		if err := v.RegisterValidation("direction", validDirection); err != nil {
			logger.GetLogger().Errorw("Failed to register direction validator", "error", err)
		}
	})
}

func validDirection(fl validator.FieldLevel) bool {
	_, ok := types.ParseDirection(fl.Field().String())
	return ok
}
