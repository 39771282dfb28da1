package rest

import (
	"encoding/json"
	"net/http"

	"travelbook-service/internal/domain/entity"
)

// jsonContext is the narration list returned alongside response data.
// Not to be confused with context.Context.
type jsonContext []string

func (c *jsonContext) Add(msg string) {
	*c = append(*c, msg)
}

type jsonFailure struct {
	Message string      `json:"message"`
	Context jsonContext `json:"context"`
}

type jsonEnvelope struct {
	Data    interface{} `json:"data"`
	Context jsonContext `json:"context"`
}

type jsonCredentialsReq struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type jsonBookFlightReq struct {
	Flights []entity.Document `json:"flights"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data interface{}, narrations ...string) {
	ctx := jsonContext{}
	for _, n := range narrations {
		ctx.Add(n)
	}
	writeJSON(w, status, jsonEnvelope{Data: data, Context: ctx})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, jsonFailure{Message: message, Context: jsonContext{}})
}
