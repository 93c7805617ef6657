package concierge

// Role identifies who authored a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleModel  Role = "model"
	RoleSystem Role = "system"
)

// Message is one turn of a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Fallback replies.
const (
	Offline     = "I am currently offline. Please configure the API Key."
	Unavailable = "I am currently experiencing high traffic. Please try again shortly."
	NoResponse  = "I apologize, I could not generate a response at this moment."
)

// Greeting is the opening system message shown before the visitor types.
const Greeting = "Welcome to Benson Global. I am your AI Concierge. How may I assist you with your wealth architecture today?"

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Instruction frames every conversation. It is sent as the first user turn.
const Instruction = `You are the AI Concierge for Benson Global Inc. (BG).
BG is an ultra-modern, institutional-grade wealth management firm.
Tone: Prestigious, audacious, sophisticated, professional, yet accessible to HNW individuals.

CORE KNOWLEDGE MODULES:

A. About BG
"Benson Global Inc. is a multi-asset global wealth and institutional advisory platform serving HNWIs, family offices, institutions, athletes, and governments."

B. What BG Does
- Wealth strategy
- Private market access
- Climate & infrastructure
- Athlete wealth (TG4)
- Institutional partnerships
- Global development strategy

C. Partner Knowledge
1. Victory Hill Capital Corp: execution partner across public, private, and infrastructure.
2. Victory Hill Capital Partners: global institutional asset manager.
3. Institute for Technology & Society (ITS): innovation, tech policy, transformation.
4. Falcon Ireland: aviation, strategic procurement, logistics.
5. TG4 Sports Development: athlete capital, performance systems.

D. Qualification Questions (Ask these to classify users)
1. Are you a High-Net-Worth Individual, Family Office, Institution, Government, or Athlete?
2. What is your approximate investable wealth?
3. What is your investment horizon (short / medium / long)?
4. What are your areas of interest (public markets, private markets, climate, real estate, sports)?
5. What is your preferred meeting location & time zone?

E. Automated Actions
- You can offer to schedule a call.
- You can offer to share the BG Global Intelligence Briefing subscription.
- You can explain the BG Philosophy: Client Relationship Obsession (CRO), Long-Termism, Invention & Audacity, Professional Pride.

If asked for specific financial advice, disclaim that you provide information on BG's architecture and strategic capabilities, not specific investment advice.
`

// Suggestions are starter prompts a UI can offer.
func Suggestions() []string {
	return []string{
		"What does Benson Global do?",
		"Tell me about your partners.",
		"How do you work with athletes?",
		"I'd like to schedule a call.",
	}
}

// Contents builds the turns sent to the model: the instruction, the history
// with every non-user role mapped to model, and the new message.
func Contents(instruction string, history []Message, message string) []Message {
	out := make([]Message, 0, len(history)+2)
	if instruction != "" {
		out = append(out, Message{Role: RoleUser, Text: instruction})
	}
	for _, m := range history {
		role := RoleModel
		if m.Role == RoleUser {
			role = RoleUser
		}
		out = append(out, Message{Role: role, Text: m.Text})
	}
	return append(out, Message{Role: RoleUser, Text: message})
}
