package credentials

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Inventory is a yaml file listing the servers an operator manages.
type Inventory struct {
	Servers []*Server `yaml:"servers"`
}

type Server struct {
	// name to identify the server, i.e. "fra-1"
	Name string `yaml:"name"`
	// management API base url from the install log
	APIURL string `yaml:"apiUrl"`
	// sha256 hex fingerprint of the server certificate
	CertSHA256 string `yaml:"certSha256"`
}

func LoadInventory(path string) (*Inventory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	inv := &Inventory{}
	if err := yaml.Unmarshal(b, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Lookup finds a server by name. An empty name selects the sole entry
// when the inventory has exactly one.
func (inv *Inventory) Lookup(name string) (Credentials, error) {
	if len(name) == 0 && len(inv.Servers) == 1 {
		s := inv.Servers[0]
		return Credentials{APIURL: s.APIURL, CertSHA256: s.CertSHA256}, nil
	}
	for _, s := range inv.Servers {
		if s.Name == name {
			return Credentials{APIURL: s.APIURL, CertSHA256: s.CertSHA256}, nil
		}
	}
	return Credentials{}, fmt.Errorf("server %q not found in inventory", name)
}
