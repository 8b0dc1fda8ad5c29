package env

import (
	"github.com/denisbrodbeck/machineid"
)

// ClientID derives a stable client id for app on this machine without
// exposing the raw machine id.
func ClientID(app string) (string, error) {
	id, err := machineid.ProtectedID(app)
	if err != nil {
		return "", err
	}
	if len(id) > 12 {
		id = id[:12]
	}
	return app + "-" + id, nil
}
