package util

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps downloaded bodies; card art is well below this.
const maxBodyBytes = 16 << 20

// GetBytes fetches url and returns the body of a 200 response.
func GetBytes(url string, timeout time.Duration) ([]byte, error) {
	client := http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
