// internal/service/facts.go
package service

// waterFacts feeds the /fact command.
var waterFacts = []string{
	"Water makes up about 60% of an adult's body weight.",
	"Even mild dehydration can cause fatigue and headaches.",
	"Water helps regulate body temperature.",
	"Drinking water can improve concentration and cognitive function.",
	"Water helps the kidneys flush toxins out of the body.",
	"Drinking enough water can improve the condition of your skin.",
	"Water lubricates joints and reduces friction between bones.",
	"A person can survive only 3-5 days without water.",
	"Water aids digestion and helps prevent constipation.",
	"Drinking water before meals can help with weight control.",
}
