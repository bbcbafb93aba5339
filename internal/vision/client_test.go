package vision

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("not really pixels"), 0o644))
	return path
}

func TestCheckParkingDecodesDetection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/parkingcheck", r.URL.Path)

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "lot.png", header.Filename)
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

		w.Write([]byte(`{"status":true,"data":{
			"parking_valid":true,"total_slot":10,"occupied_slot":7,
			"free_slots":3,"detected_car_count":7,"message":"Lot looks busy."
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	detection, err := client.CheckParking(context.Background(), writeTestImage(t, "lot.png"))
	require.NoError(t, err)
	assert.True(t, detection.ParkingValid)
	require.NotNil(t, detection.FreeSlots)
	assert.Equal(t, 3, *detection.FreeSlots)
	assert.Equal(t, "Lot looks busy.", detection.Details())
}

func TestCheckParkingFailureCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"Image too blurry."}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.CheckParking(context.Background(), writeTestImage(t, "lot.jpg"))
	require.Error(t, err)
	var visionErr *Error
	require.ErrorAs(t, err, &visionErr)
	assert.Equal(t, "Image too blurry.", visionErr.Message)
}

func TestCheckSecurityDecodesDetection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/securitycheck", r.URL.Path)
		w.Write([]byte(`{"status":true,"data":{
			"activity":"loitering","alert_level":"medium","confidence":0.87,
			"detected_objects":["person","backpack"]
		}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	detection, err := client.CheckSecurity(context.Background(), writeTestImage(t, "cam.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "loitering", detection.ActivityLabel())
	assert.Equal(t, "medium", detection.AlertLabel())
	assert.Equal(t, "person, backpack", detection.ObjectsLabel())
}

func TestUploadMissingFile(t *testing.T) {
	client := NewClient("http://unused", time.Second)
	_, err := client.CheckParking(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
}

func TestMIMEForExtension(t *testing.T) {
	assert.Equal(t, "image/png", MIMEForExtension("a.PNG"))
	assert.Equal(t, "image/gif", MIMEForExtension("a.gif"))
	assert.Equal(t, "image/webp", MIMEForExtension("a.webp"))
	assert.Equal(t, "image/jpeg", MIMEForExtension("a.jpg"))
	assert.Equal(t, "image/jpeg", MIMEForExtension("a.jpeg"))
	assert.Equal(t, "image/jpeg", MIMEForExtension("noext"))
	assert.Equal(t, "image/bmp", MIMEForExtension("a.bmp"))
}
