package capture

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/sentinelcam/go-sentinel/internal/log"
)

// maxFrameWidth bounds frames before scoring. Larger frames are downscaled
// preserving aspect ratio to keep request payloads small.
const maxFrameWidth = 1280

// VideoSource reads frames from a webcam device or a video file via OpenCV.
type VideoSource struct {
	mu     sync.Mutex
	cap    *gocv.VideoCapture
	mat    gocv.Mat
	closed bool
	desc   string
}

// OpenDevice opens a webcam by device id.
func OpenDevice(deviceID int) (*VideoSource, error) {
	cap, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("capture: open device %d: %w", deviceID, err)
	}
	cap.Set(gocv.VideoCaptureBufferSize, 1)
	return newVideoSource(cap, fmt.Sprintf("device %d", deviceID)), nil
}

// OpenFile opens a video file or stream URL.
func OpenFile(path string) (*VideoSource, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", path, err)
	}
	return newVideoSource(cap, path), nil
}

func newVideoSource(cap *gocv.VideoCapture, desc string) *VideoSource {
	log.Info("capture source opened", "source", desc)
	return &VideoSource{
		cap:  cap,
		mat:  gocv.NewMat(),
		desc: desc,
	}
}

// Next reads one frame, downscaling it when wider than maxFrameWidth.
func (v *VideoSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrSourceClosed
	}
	if ok := v.cap.Read(&v.mat); !ok {
		// A file source ends here; a device source has failed.
		return nil, ErrSourceClosed
	}
	if v.mat.Empty() {
		return nil, ErrEmptyFrame
	}

	if v.mat.Cols() > maxFrameWidth {
		scale := float64(maxFrameWidth) / float64(v.mat.Cols())
		height := int(float64(v.mat.Rows()) * scale)
		gocv.Resize(v.mat, &v.mat, image.Pt(maxFrameWidth, height), 0, 0, gocv.InterpolationLinear)
	}

	img, err := v.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("capture: decode frame: %w", err)
	}
	return img, nil
}

// Close releases the capture device.
func (v *VideoSource) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil
	}
	v.closed = true
	v.mat.Close()
	if err := v.cap.Close(); err != nil {
		return fmt.Errorf("capture: close %s: %w", v.desc, err)
	}
	log.Info("capture source closed", "source", v.desc)
	return nil
}

var _ Source = (*VideoSource)(nil)
