package views

import "time"

const HeroInterval = 5 * time.Second

type Slide struct {
	Title       string
	Subtitle    string
	Description string
	Category    string
	Label       string
	Image       string
}

func (s Slide) ShopLink() string { return "/products?category=" + s.Category }

var slides = []Slide{
	{
		Title:       "Premium Wireless",
		Subtitle:    "Headphones",
		Description: "Experience studio-quality sound with our premium wireless headphones",
		Category:    "wireless",
		Label:       "New Arrival",
		Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800",
	},
	{
		Title:       "Ultra Compact",
		Subtitle:    "Earbuds",
		Description: "True wireless freedom with exceptional audio clarity",
		Category:    "earbuds",
		Label:       "New Arrival",
		Image:       "https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
	},
	{
		Title:       "Gaming Pro",
		Subtitle:    "Headsets",
		Description: "Immersive gaming experience with crystal clear communication",
		Category:    "gaming",
		Label:       "New Arrival",
		Image:       "https://images.unsplash.com/photo-1599669454699-248893623440?w=800",
	},
}

type Hero struct {
	Slides     []Slide
	Current    int
	IntervalMS int64
}

// NewHero starts at index current, wrapped into range.
func NewHero(current int) Hero {
	h := Hero{Slides: slides, IntervalMS: HeroInterval.Milliseconds()}
	h.Current = h.wrap(current)
	return h
}

func (h Hero) Active() Slide { return h.Slides[h.Current] }

func (h Hero) Next() int { return h.wrap(h.Current + 1) }

func (h Hero) Prev() int { return h.wrap(h.Current - 1) }

func (h Hero) wrap(i int) int {
	n := len(h.Slides)
	return ((i % n) + n) % n
}
