package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/game"
	"github.com/gorilla/mux"
)

// Handler exposes the game engine over HTTP+JSON. The leaderboard is meant to
// be polled; there is no push channel.
type Handler struct {
	service *game.GameService
}

func NewHandler(service *game.GameService) *Handler {
	return &Handler{service: service}
}

// NewRouter wires all routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/start", h.StartGame).Methods(http.MethodPost)
	api.HandleFunc("/answer", h.SubmitAnswer).Methods(http.MethodPost)
	api.HandleFunc("/leaderboard", h.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/player/{alias}/{gameId}", h.History).Methods(http.MethodGet)
	api.HandleFunc("/question/{id}", h.UpdateQuestion).Methods(http.MethodPut)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return r
}

type startRequest struct {
	Alias string `json:"alias"`
}

type startResponse struct {
	GameID          int64             `json:"gameId"`
	Message         string            `json:"message"`
	EasyQuestions   []domain.Question `json:"easyQuestions"`
	MediumQuestions []domain.Question `json:"mediumQuestions"`
	HardQuestions   []domain.Question `json:"hardQuestions"`
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.service.StartGame(r.Context(), req.Alias)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, startResponse{
		GameID:          res.GameID,
		Message:         "game started",
		EasyQuestions:   res.Easy,
		MediumQuestions: res.Medium,
		HardQuestions:   res.Hard,
	})
}

type answerRequest struct {
	GameID     int64  `json:"gameId"`
	QuestionID int64  `json:"questionId"`
	Answer     string `json:"answer"`
}

type answerResponse struct {
	Correct           bool    `json:"correct"`
	Points            int     `json:"points"`
	Score             int     `json:"score"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	GameFinished      bool    `json:"gameFinished"`
	NextQuestionIDs   []int64 `json:"nextQuestionIds"`
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.service.SubmitAnswer(r.Context(), req.GameID, req.QuestionID, req.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{
		Correct:           res.Correct,
		Points:            res.Points,
		Score:             res.Score,
		QuestionsAnswered: res.QuestionsAnswered,
		GameFinished:      res.Finished,
		NextQuestionIDs:   res.NextQuestionIDs,
	})
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Leaderboard(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.GameSummary{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gameID, err := strconv.ParseInt(vars["gameId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return
	}

	hist, err := h.service.History(r.Context(), vars["alias"], gameID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

type updateQuestionRequest struct {
	Question      *string `json:"question"`
	CorrectAnswer *string `json:"correct_answer"`
	Difficulty    *string `json:"difficulty"`
}

type updateQuestionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	var req updateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := domain.QuestionPatch{Text: req.Question, Answer: req.CorrectAnswer}
	if req.Difficulty != nil {
		tier, ok := domain.ParseTier(*req.Difficulty)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid difficulty")
			return
		}
		patch.Tier = &tier
	}

	if _, err := h.service.UpdateQuestion(r.Context(), id, patch); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updateQuestionResponse{Success: true, Message: "question updated"})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps the engine's error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a storage failure and stays generic.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrGameNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnknownPlayer),
		errors.Is(err, domain.ErrEmptyInput),
		errors.Is(err, domain.ErrQuestionNotInGame),
		errors.Is(err, domain.ErrAlreadyAnswered),
		errors.Is(err, domain.ErrGameFinished),
		errors.Is(err, domain.ErrNoFieldsToUpdate):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
