package services

import (
	"database/sql"
	"errors"
)

var (
	ErrBadCreds          = errors.New("invalid email or password")
	ErrNotFound          = errors.New("not found")
	ErrSlotTaken         = errors.New("Este horário já está ocupado para o profissional selecionado. Por favor, escolha outro horário ou profissional.")
	ErrProfessionalInUse = errors.New("Este profissional possui agendamentos e não pode ser excluído.")
)

// ValidationError carries a message meant for the person filling the form.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
