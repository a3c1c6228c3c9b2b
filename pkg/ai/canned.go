package ai

import (
	"context"
	"strings"
)

// GreetingMessage opens every new mentor conversation.
const GreetingMessage = "👋 Hi! I'm your AI Career Mentor. I can help you with career guidance, learning resources, skill development, and more. How can I assist you today?"

type cannedReply struct {
	keyword string
	reply   string
}

// Keyword rules are checked in order; the first keyword contained in the
// lowercased question wins.
var cannedReplies = []cannedReply{
	{
		keyword: "data science",
		reply:   "For Data Science, I recommend: 1️⃣ **Python** (NumPy, Pandas, Matplotlib), 2️⃣ **Statistics & Math**, 3️⃣ **Machine Learning** (Scikit-learn), 4️⃣ **SQL** for databases, 5️⃣ **Data Visualization** (Tableau/Power BI). Start with Python basics, then move to data manipulation. Build 2-3 projects to showcase your skills!",
	},
	{
		keyword: "coding interviews",
		reply:   "For coding interviews: 1️⃣ Master **DSA** (Arrays, LinkedList, Trees, Graphs), 2️⃣ Practice on **LeetCode/HackerRank** (solve 100+ problems), 3️⃣ Learn **Time/Space Complexity**, 4️⃣ Study **System Design** basics, 5️⃣ Mock interviews with friends. Focus on problem-solving patterns!",
	},
	{
		keyword: "react",
		reply:   "To learn React: 1️⃣ First learn **JavaScript ES6+** (Arrow functions, Promises), 2️⃣ React **Components & Props**, 3️⃣ **State Management** (useState, useEffect), 4️⃣ **React Router** for navigation, 5️⃣ Build projects (Todo App, Weather App). Free resources: React.dev docs, freeCodeCamp, Scrimba.",
	},
	{
		keyword: "ai ml engineer",
		reply:   "AI/ML Engineer roadmap: **Year 1:** Python + Math + Statistics + Basic ML. **Year 2:** Deep Learning (TensorFlow/PyTorch) + NLP/Computer Vision + Projects. **Year 3:** Advanced topics + Research papers + Real-world deployment. Key skills: Python, Mathematics, ML algorithms, Neural Networks, Cloud (AWS/GCP).",
	},
	{
		keyword: "career",
		reply:   "Your career path depends on: 1️⃣ **Your interests** (what excites you?), 2️⃣ **Your skills** (what are you good at?), 3️⃣ **Market demand** (job availability), 4️⃣ **Salary expectations**. Complete our skill tests and psychometric assessment for personalized recommendations!",
	},
}

const defaultReply = "Great question! 🤔 I can help you with: ✅ Career guidance, ✅ Learning resources, ✅ Skill development, ✅ Interview prep, ✅ Project ideas. Try asking about specific topics like 'web development', 'data science', or 'career advice'!"

// CannedResponder answers from a fixed keyword table. It needs no network
// and is the default mentor backend.
type CannedResponder struct{}

// NewCannedResponder constructs the keyword-table responder.
func NewCannedResponder() *CannedResponder {
	return &CannedResponder{}
}

func (r *CannedResponder) Respond(_ context.Context, question string) (string, error) {
	lower := strings.ToLower(question)
	for _, candidate := range cannedReplies {
		if strings.Contains(lower, candidate.keyword) {
			return candidate.reply, nil
		}
	}

	return defaultReply, nil
}
