// Package people is the record type the correlator ships with: people exported
// from two systems that must be matched against each other, such as a CRM
// table and a JSON dump of the same accounts.
//
// # Components
//
//   - Person: the gorm/json/yaml mapped record.
//   - Descriptor: the attribute table used for patching and comparison.
//   - LoadFromDB / LoadFromStorage: read a record set from a table or an object.
//   - Registry: the named strategies and reporters runs refer to.
package people
