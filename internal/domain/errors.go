package domain

import "errors"

var (
	// ErrUnknownPlayer is returned when an alias is not in the allow-list.
	ErrUnknownPlayer = errors.New("player alias does not exist")
	// ErrEmptyInput is returned when a required field (alias, answer) is blank.
	ErrEmptyInput = errors.New("required input is empty")
	// ErrGameNotFound indicates the game ID does not resolve to a game.
	ErrGameNotFound = errors.New("game not found")
	// ErrGameFinished rejects submissions against a completed game.
	ErrGameFinished = errors.New("game is already finished")
	// ErrQuestionNotInGame indicates the question is outside the game's snapshot.
	ErrQuestionNotInGame = errors.New("question is not part of this game")
	// ErrAlreadyAnswered rejects a second submission for the same question.
	ErrAlreadyAnswered = errors.New("question was already answered")
	// ErrQuestionNotFound indicates a question ID no longer resolves in the bank.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoFieldsToUpdate is returned for an edit request with no fields set.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
