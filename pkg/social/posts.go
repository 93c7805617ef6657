package social

// Platform names a social network.
type Platform string

const (
	LinkedIn  Platform = "linkedin"
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	X         Platform = "x"
	YouTube   Platform = "youtube"
)

// Platforms lists the supported networks in display order.
func Platforms() []Platform {
	return []Platform{LinkedIn, Instagram, Facebook, X, YouTube}
}

type post struct {
	handle  string
	content string
	image   string
}

var posts = map[Platform][]post{
	LinkedIn: {
		{handle: "Benson Global Inc.", content: "Honored to announce our strategic alliance with Victory Hill Capital. A new era of regenerative infrastructure investment begins today. #BensonGlobal #PrivateMarkets"},
		{handle: "Benson Global Inc.", content: "Dr. Anthony Benson speaking at the Global Wealth Forum: 'The future of capital is not just growth, it's resilience.' Read the full transcript."},
		{handle: "Benson Global Inc.", content: "Welcoming our new Managing Partner, Dr. Tiaan Oosthuizen. Strengthening our institutional footprint across EMEA."},
	},
	Instagram: {
		{handle: "@bensonglobal", content: "Behind the scenes at the TG4 Athlete Wealth Summit in Qatar. Building legacies beyond the game. #WealthArchitecture", image: "https://picsum.photos/300/200?random=1"},
		{handle: "@bensonglobal", content: "Site visit: The new regenerative energy grid in Namibia. Capital in action. #GreenEnergy #BensonGlobal", image: "https://picsum.photos/300/200?random=2"},
		{handle: "@bensonglobal", content: "Precision in every detail. Our annual investor gala in London. #Luxury #Finance #Global", image: "https://picsum.photos/300/200?random=3"},
	},
	Facebook: {
		{handle: "Benson Global", content: "Community update: Benson Global expands educational initiatives in Ghana. Empowering the next generation of leaders through strategic capital deployment."},
		{handle: "Benson Global", content: "Join us next week for a live webinar on Family Office Governance structures with Kavis Reed. Register now via the link in bio."},
		{handle: "Benson Global", content: "Celebrating 5 years of partnership with Falcon Ireland. Here's to many more milestones."},
	},
	X: {
		{handle: "@BensonGlobal", content: "Market Volatility is noise. Strategy is signal. Read Dr. Benson's latest brief on the Africa-Euro growth corridor."},
		{handle: "@BensonGlobal", content: "Just in: Public market pillars showing resilience amidst global shifts. Our Q3 outlook is live. #Finance #Investments"},
		{handle: "@BensonGlobal", content: "Sustainable investing isn't a trend, it's the standard. #RegenerativeCapital #BGI"},
	},
	YouTube: {
		{handle: "Benson Global TV", content: "NEW VIDEO: The Regenerative Capital Thesis (Keynote 2025). Watch Dr. Tiaan Oosthuizen break down the transition economy.", image: "https://picsum.photos/300/200?random=4"},
		{handle: "Benson Global TV", content: "Client Stories: How the TG4 ecosystem is redefining athlete retirement planning.", image: "https://picsum.photos/300/200?random=5"},
		{handle: "Benson Global TV", content: "Market Watch: Q4 Global Infrastructure Outlook with our Chief Investment Officer.", image: "https://picsum.photos/300/200?random=6"},
	},
}

var times = []string{"Just now", "1m ago", "5m ago", "12m ago", "34m ago", "1h ago", "2h ago"}
