package utils

// MaskAddress shortens an account address for logging: the first 10 and last
// 4 characters are kept, the middle is replaced with "…". Addresses too short
// to mask are returned unchanged.
func MaskAddress(addr string) string {
	if len(addr) <= 14 {
		return addr
	}
	return addr[:10] + "…" + addr[len(addr)-4:]
}
