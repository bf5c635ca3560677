package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/api/response"
	"github.com/nhle/dashboard/internal/refresh"
	"github.com/nhle/dashboard/internal/settings"
	"github.com/nhle/dashboard/internal/sysinfo"
)

// DataHandler serves the read-only widgets: weather, quote, metrics,
// battery and the speed test.
type DataHandler struct {
	settings *settings.Manager
	weather  *refresh.Weather
	quotes   *refresh.Quotes
	probe    *sysinfo.Probe
}

func (handler *DataHandler) Router(router chi.Router) {
	router.Get("/weather", handler.GetWeather)
	router.Get("/quote", handler.GetQuote)
	router.Get("/metrics", handler.GetMetrics)
	router.Get("/battery", handler.GetBattery)
	router.Post("/speedtest", handler.RunSpeedTest)
}

// GetWeather looks up the weather for the city query parameter, or the
// configured city when it is absent. Each request runs its own lookup. A
// failed lookup is still a 200 with state "failed".
func (handler *DataHandler) GetWeather(writer http.ResponseWriter, request *http.Request) {
	city := request.URL.Query().Get("city")
	if city == "" {
		city = handler.settings.Current().City
	}

	snap := handler.weather.Fetch(request.Context(), city)

	response.WithJSON(writer, http.StatusOK, snap)
}

func (handler *DataHandler) GetQuote(writer http.ResponseWriter, request *http.Request) {
	response.WithJSON(writer, http.StatusOK, handler.quotes.Next(request.Context()))
}

func (handler *DataHandler) GetMetrics(writer http.ResponseWriter, _ *http.Request) {
	response.WithJSON(writer, http.StatusOK, handler.probe.Metrics())
}

func (handler *DataHandler) GetBattery(writer http.ResponseWriter, _ *http.Request) {
	response.WithJSON(writer, http.StatusOK, handler.probe.Battery())
}

// RunSpeedTest blocks until the simulated test completes or the client
// goes away.
func (handler *DataHandler) RunSpeedTest(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.probe.SpeedTest(request.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("speed test cancelled")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, result)
}
