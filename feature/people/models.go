package people

import (
	"strings"
	"time"

	"data-correlator/core/record"
)

// Person is a person record as stored in either system.
type Person struct {
	ID          int       `gorm:"column:id;primaryKey" json:"id" yaml:"id"`
	FirstName   string    `gorm:"column:first_name" json:"first_name" yaml:"first_name"`
	LastName    string    `gorm:"column:last_name" json:"last_name" yaml:"last_name"`
	Description string    `gorm:"column:description" json:"description,omitempty" yaml:"description,omitempty"`
	Email       string    `gorm:"column:email" json:"email" yaml:"email"`
	Address     string    `gorm:"column:address" json:"address,omitempty" yaml:"address,omitempty"`
	Active      bool      `gorm:"column:active" json:"active" yaml:"active"`
	AccountID   int       `gorm:"column:account_id" json:"account_id,omitempty" yaml:"account_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at" yaml:"updated_at"`
}

// Name is the full name.
func (p Person) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Columns are the table columns a people table must carry.
var Columns = []string{"id", "first_name", "last_name", "email", "active", "created_at", "updated_at"}

// Descriptor is the attribute table of Person.
var Descriptor = record.MustDescriptor(
	record.Attr("id", func(p Person) int { return p.ID }, func(p *Person, v int) { p.ID = v }),
	record.Attr("first_name", func(p Person) string { return p.FirstName }, func(p *Person, v string) { p.FirstName = v }),
	record.Attr("last_name", func(p Person) string { return p.LastName }, func(p *Person, v string) { p.LastName = v }),
	record.Attr("description", func(p Person) string { return p.Description }, func(p *Person, v string) { p.Description = v }),
	record.Attr("email", func(p Person) string { return p.Email }, func(p *Person, v string) { p.Email = v }),
	record.Attr("address", func(p Person) string { return p.Address }, func(p *Person, v string) { p.Address = v }),
	record.Attr("active", func(p Person) bool { return p.Active }, func(p *Person, v bool) { p.Active = v }),
	record.Attr("account_id", func(p Person) int { return p.AccountID }, func(p *Person, v int) { p.AccountID = v }),
	record.Attr("created_at", func(p Person) time.Time { return p.CreatedAt }, func(p *Person, v time.Time) { p.CreatedAt = v }),
	record.Attr("updated_at", func(p Person) time.Time { return p.UpdatedAt }, func(p *Person, v time.Time) { p.UpdatedAt = v }),
)
