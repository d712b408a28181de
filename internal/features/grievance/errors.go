package grievance

import "errors"

// ErrTooManySubmissions is returned when a user exceeds the hourly
// submission cap.
var ErrTooManySubmissions = errors.New("too many submissions, please wait before posting again")
