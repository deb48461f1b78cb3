package tournament

// The banner pool is a fixed set of bundled assets; tournaments do not upload
// their own art. Selection hashes the id string so a tournament always gets
// the same banner.
var bannerFiles = []string{
	"banner-1.jpg",
	"banner-2.jpg",
	"banner-3.jpg",
	"banner-4.jpg",
	"banner-5.jpg",
}

// PickBanner deterministically selects a banner file for a tournament id:
// the sum of the id's byte values modulo the pool size.
func PickBanner(id string) string {
	sum := 0
	for i := 0; i < len(id); i++ {
		sum += int(id[i])
	}
	return bannerFiles[sum%len(bannerFiles)]
}
