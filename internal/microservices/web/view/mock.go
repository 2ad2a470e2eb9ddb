package view

import (
	"strconv"
	"time"

	"mangareader/internal/apiclient"
)

// MockManga is the demo record shown when WEB_MOCK_FALLBACK is on and the
// API cannot be reached.
func MockManga(id string) *apiclient.Manga {
	mangaID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		mangaID = 1
	}
	releaseYear := 1999
	views := int64(15_000_000)
	count := func(n int64) *int64 { return &n }
	day := func(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, time.Local) }

	return &apiclient.Manga{
		ID:    mangaID,
		Title: "One Piece",
		Description: "Gol D. Roger, vua hải tặc với khối tài sản vô giá One Piece, đã bị xử tử. " +
			"Trước khi chết, ông tiết lộ rằng kho báu của mình được giấu ở Grand Line. " +
			"Monkey D. Luffy, một cậu bé với ước mơ trở thành vua hải tặc, vô tình ăn phải trái ác quỷ Gomu Gomu, " +
			"biến cơ thể cậu thành cao su. Giờ đây, cậu cùng các đồng đội hải tặc mũ rơm bắt đầu cuộc hành trình " +
			"tìm kiếm kho báu One Piece.",
		CoverImage:  "https://m.media-amazon.com/images/I/51FVFCrSp0L._AC_UF1000,1000_QL80_.jpg",
		Author:      "Eiichiro Oda",
		Status:      "ongoing",
		ReleaseYear: &releaseYear,
		Genres:      []any{"Action", "Adventure", "Comedy", "Fantasy", "Shounen", "Super Power"},
		Chapters: []apiclient.Chapter{
			{ID: 1, Number: 1088, Title: "Cuộc chiến cuối cùng", CreatedAt: day(time.August, 10), ViewCount: count(150_000)},
			{ID: 2, Number: 1087, Title: "Luffy vs Kaido", CreatedAt: day(time.August, 3), ViewCount: count(145_000)},
			{ID: 3, Number: 1086, Title: "Bí mật của Laugh Tale", CreatedAt: day(time.July, 27), ViewCount: count(140_000)},
		},
		ViewCount: &views,
	}
}
