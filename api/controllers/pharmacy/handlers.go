package pharmacy

import (
	"net/http"

	"github.com/wellway-health/wellway-backend/api/responses"
	"github.com/wellway-health/wellway-backend/api/validators"
	pharmacysvc "github.com/wellway-health/wellway-backend/internal/pharmacy"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
)

// GetConfig serves the storefront profile.
func GetConfig(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		profile, err := svc.GetProfile(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// UpdateConfig applies a partial profile update.
func UpdateConfig(svc pharmacysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pharmacy service unavailable"))
			return
		}

		var payload pharmacysvc.UpdateProfileInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
