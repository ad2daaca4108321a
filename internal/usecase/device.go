package usecase

import "strings"

const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
)

var mobileMarkers = []string{
	"android",
	"iphone",
	"ipad",
	"blackberry",
	"windows phone",
	"mobile",
	"tablet",
}

// DetectDevice classifica o user-agent do chamador entre mobile e desktop,
// para decidir entre a URL wa.me e o deep link whatsapp://.
func DetectDevice(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, marker := range mobileMarkers {
		if strings.Contains(ua, marker) {
			return DeviceMobile
		}
	}
	return DeviceDesktop
}
