package credentials

import (
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"os"
	"regexp"
)

const (
	EnvAPIURL     = "OUTLINE_API_URL"
	EnvCertSHA256 = "OUTLINE_CERT_SHA256"
)

var (
	ErrNoCredentials = errors.New("no api credentials found in install log")

	jsonObjectRegex = regexp.MustCompile(`\{[^}]+\}`)
)

// Credentials locate one Outline server's management API.
type Credentials struct {
	APIURL     string `json:"apiUrl"`
	CertSHA256 string `json:"certSha256"`
}

// FromEnv reads credentials from OUTLINE_API_URL and OUTLINE_CERT_SHA256.
func FromEnv() (Credentials, bool) {
	creds := Credentials{
		APIURL:     os.Getenv(EnvAPIURL),
		CertSHA256: os.Getenv(EnvCertSHA256),
	}
	return creds, len(creds.APIURL) != 0 && len(creds.CertSHA256) != 0
}

// FromInstallLog extracts credentials from the output of the Outline
// installer script, which embeds a JSON object carrying the API url and
// certificate hash. The installer advertises the server's public
// address, so the url host is rewritten to loopback for management from
// the server itself.
func FromInstallLog(path string) (Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, err
	}
	return parseInstallLog(b)
}

func parseInstallLog(log []byte) (Credentials, error) {
	for _, candidate := range jsonObjectRegex.FindAll(log, -1) {
		var creds Credentials
		if err := json.Unmarshal(candidate, &creds); err != nil {
			continue
		}
		if len(creds.APIURL) == 0 || len(creds.CertSHA256) == 0 {
			continue
		}
		apiURL, err := rewriteToLoopback(creds.APIURL)
		if err != nil {
			return Credentials{}, err
		}
		creds.APIURL = apiURL
		return creds, nil
	}
	return Credentials{}, ErrNoCredentials
}

func rewriteToLoopback(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", err
	}
	if port := u.Port(); len(port) != 0 {
		u.Host = net.JoinHostPort("127.0.0.1", port)
	} else {
		u.Host = "127.0.0.1"
	}
	return u.String(), nil
}
