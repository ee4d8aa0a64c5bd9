package api

import (
	"net/http"

	"github.com/cartabinaria/auth/pkg/httputil"
	"github.com/cartabinaria/forecast/auth"
	"github.com/cartabinaria/forecast/util"
	"github.com/kataras/muxie"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// Prefix is the path every resource route is mounted under.
const Prefix = "/api/v1"

// NewMux wires every route of the service. Request logging and CORS wrap
// the returned mux from the outside.
func NewMux(tokens *auth.TokenService) *muxie.Mux {
	mux := muxie.NewMux()

	mux.HandleFunc("/health", HealthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/swagger/doc.json", SwaggerHandler)

	v1 := mux.Of(Prefix)
	authChain := muxie.Pre(auth.RequireToken(tokens))

	// predictions
	v1.Handle("/predictions", muxie.Methods().
		HandleFunc(http.MethodGet, GetPredictionsHandler).
		HandleFunc(http.MethodPost, PostPredictionHandler))
	v1.HandleFunc("/predictions/timeframe", GetTimeframePredictionsHandler)
	v1.Handle("/predictions/:id", muxie.Methods().
		HandleFunc(http.MethodGet, GetPredictionHandler).
		HandleFunc(http.MethodPut, PutPredictionHandler).
		HandleFunc(http.MethodDelete, DeletePredictionHandler))
	v1.HandleFunc("/predictions/incomplete/:id", DeleteIncompletePredictionsHandler)

	// reasons and their sources
	v1.Handle("/reasons", muxie.Methods().
		HandleFunc(http.MethodGet, GetReasonsHandler).
		HandleFunc(http.MethodPost, PostReasonHandler))
	v1.Handle("/reasons/:id", muxie.Methods().
		HandleFunc(http.MethodGet, GetPredictionReasonsHandler).
		HandleFunc(http.MethodPut, PutReasonHandler).
		HandleFunc(http.MethodDelete, DeleteReasonHandler))
	v1.Handle("/sources", muxie.Methods().
		HandleFunc(http.MethodGet, GetSourcesHandler).
		HandleFunc(http.MethodPost, PostSourceHandler))
	v1.Handle("/sources/:id", muxie.Methods().
		HandleFunc(http.MethodGet, GetReasonSourcesHandler).
		HandleFunc(http.MethodPut, PutSourceHandler).
		HandleFunc(http.MethodDelete, DeleteSourceHandler))

	// ballots and tallies
	v1.Handle("/votes", muxie.Methods().
		HandleFunc(http.MethodGet, GetVotesHandler).
		HandleFunc(http.MethodPost, PostVoteHandler))
	v1.HandleFunc("/votes/:id", GetPredictionVotesHandler)
	v1.HandleFunc("/votes/:id/:user_id", DeleteVoteHandler)
	v1.HandleFunc("/votes/update/:id/:user_id", PutVoteHandler)
	v1.Handle("/votes/tallies", muxie.Methods().
		HandleFunc(http.MethodGet, GetTalliesHandler).
		HandleFunc(http.MethodPost, PostTallyHandler))
	v1.HandleFunc("/votes/tallies/:id", GetTallyHandler)
	v1.HandleFunc("/votes/tallies/:tally_value/:id", BumpTallyHandler)

	// comments
	v1.Handle("/comments", muxie.Methods().
		HandleFunc(http.MethodGet, GetCommentsHandler).
		HandleFunc(http.MethodPost, PostCommentHandler))
	v1.Handle("/comments/:id", muxie.Methods().
		HandleFunc(http.MethodGet, GetPredictionCommentsHandler).
		HandleFunc(http.MethodPut, PutCommentHandler).
		HandleFunc(http.MethodDelete, DeleteCommentHandler))
	v1.Handle("/comment-votes", muxie.Methods().
		HandleFunc(http.MethodGet, GetCommentVotesHandler).
		HandleFunc(http.MethodPost, PostCommentVoteHandler))
	v1.HandleFunc("/comment-votes/:id", GetCommentCommentVotesHandler)
	v1.HandleFunc("/comment-votes/:like_value/:id", BumpCommentHandler)

	// accounts
	v1.HandleFunc("/accounts", GetAccountsHandler)
	v1.Handle("/accounts/register", muxie.Methods().
		Handle(http.MethodPost, muxie.Pre(ValidateRegistration).ForFunc(RegisterHandler(tokens))))
	v1.Handle("/accounts/login", muxie.Methods().
		Handle(http.MethodPost, muxie.Pre(ValidateLogin).ForFunc(LoginHandler(tokens))))
	v1.Handle("/accounts/verification", authChain.ForFunc(VerificationHandler))
	v1.Handle("/accounts/dashboard", authChain.ForFunc(DashboardHandler))
	v1.HandleFunc("/accounts/dashboard/:id", GetDashboardByIdHandler)

	return mux
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// @Summary		Health check
// @Tags			operations
// @Produce		json
// @Success		200	{object}	healthResponse
// @Failure		503	{object}	healthResponse
// @Router			/health [get]
func HealthHandler(res http.ResponseWriter, req *http.Request) {
	sqlDB, err := util.GetDb().DB()
	if err == nil {
		err = sqlDB.PingContext(req.Context())
	}
	if err != nil {
		httputil.WriteData(res, http.StatusServiceUnavailable, healthResponse{Status: StatusFailure, Database: err.Error()})
		return
	}
	httputil.WriteData(res, http.StatusOK, healthResponse{Status: StatusSuccess, Database: "ok"})
}

func SwaggerHandler(res http.ResponseWriter, req *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeServerError(res, "could not read the API document", err)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	_, _ = res.Write([]byte(doc))
}
