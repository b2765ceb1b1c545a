package domain

import "errors"

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrBackend    = errors.New("backend failure")
)

// Error carries a user-facing message together with its kind. The message is
// shown verbatim by the portal UI.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// Backend marks err as a persistence failure.
func Backend(err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: ErrBackend, Message: err.Error(), Err: err}
}

var (
	ErrUserNotFound     = NotFound("Usuario no encontrado")
	ErrWrongPassword    = Validation("Contraseña incorrecta")
	ErrEmailTaken       = Validation("Este email ya está registrado")
	ErrCourseNotFound   = NotFound("Curso no encontrado")
	ErrLessonNotFound   = NotFound("Clase no encontrada")
	ErrNewsNotFound     = NotFound("Noticia no encontrada")
	ErrAlreadyEnrolled  = Conflict("Ya estás inscripto en este curso")
	ErrNotEnrolled      = Validation("No estás inscripto en este curso")
	ErrNoAssignment     = Validation("Esta clase no tiene tarea")
	ErrGradeOutOfRange  = Validation("La calificación debe estar entre 0 y 100")
	ErrSubmissionAbsent = NotFound("Entrega no encontrada")
	ErrStaleDocument    = Conflict("El documento fue modificado por otra sesión, recargá e intentá de nuevo")
)
