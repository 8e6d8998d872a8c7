package pgembed

import "github.com/sethvargo/go-password/password"

// GeneratePassword returns a random 32-character password suitable for
// Settings.Password, for callers that don't want to choose one
// themselves. Grounded on cloudnative-pg's cluster_create.go, which
// generates its superuser password the same way when provisioning a new
// cluster.
func GeneratePassword() (string, error) {
	return password.Generate(32, 10, 0, false, false)
}
