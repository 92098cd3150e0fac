package user

import "time"

// User is an identity record. Credentials and authentication flows live in an
// external identity provider; the backend only needs to resolve who a request
// belongs to.
type User struct {
	Id          int
	Uid         string
	Email       string
	DisplayName string
	CreatedAt   time.Time
}
