package types

import "fmt"

// CustomError carries an HTTP status through the Fiber error handler along
// with the dotted error type the frontend switches on.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
