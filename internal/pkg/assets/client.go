package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrEmptyURL адрес логотипа пустой
	ErrEmptyURL = errors.New("empty logo url")
	// ErrFetch логотип не удалось скачать
	ErrFetch = errors.New("logo fetch failed")
	// ErrDecode скачанные данные не являются поддерживаемым изображением
	ErrDecode = errors.New("logo decode failed")
)

// maxLogoBytes ограничивает размер скачиваемого логотипа
const maxLogoBytes = 10 << 20

// NewHTTPClient создает HTTP клиент для загрузки логотипов
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// download выполняет один GET без повторов
func download(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, ErrEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d", ErrFetch, resp.StatusCode)
	}

	buf := new(bytes.Buffer)
	n, err := io.Copy(buf, io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrFetch, err)
	}
	if n > maxLogoBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrFetch, maxLogoBytes)
	}
	return buf.Bytes(), nil
}
