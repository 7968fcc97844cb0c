package wlan

// QualityToDBm maps a 0-100 quality reading onto the -100..-50 dBm scale the
// platform uses when it derives quality from RSSI.
func QualityToDBm(quality int) int {
	quality = clampQuality(quality)
	switch quality {
	case 0:
		return -100
	case 100:
		return -50
	}
	return -100 + quality/2
}

// DBmToQuality is the inverse mapping, used where the kernel reports dBm.
func DBmToQuality(dbm int) int {
	switch {
	case dbm <= -100:
		return 0
	case dbm >= -50:
		return 100
	}
	return 2 * (dbm + 100)
}

func clampQuality(q int) int {
	if q < 0 {
		return 0
	}
	if q > 100 {
		return 100
	}
	return q
}
