package models

// Driver is a vendor account that drives routes.
type Driver struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Username  Text   `json:"username"`
	Email     Text   `json:"email"`
	Phone     Text   `json:"phone"`
	Status    Text   `json:"status"`
	IsAdmin   Flag   `json:"is_admin"`
	IsDriver  Flag   `json:"is_driver"`
	LastLogin Text   `json:"last_login"`
}

// Client is a customer account visits are made for.
type Client struct {
	ID      ID   `json:"id"`
	Key     Text `json:"key"`
	Name    Text `json:"name"`
	Address Text `json:"address"`
	Email   Text `json:"email"`
}
