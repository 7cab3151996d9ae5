// Package emergence crystallizes final particle dynamics into a structured
// configuration: named Hun and Po entities with derived attributes and a
// content-addressed signature over the seed state.
package emergence

import "fmt"

// HunEntity is a yang-derived output entity. Attributes are in [0,1] and
// immutable once crystallized.
type HunEntity struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Function   string  `json:"function"`
	Strength   float64 `json:"strength"`
	Purity     float64 `json:"purity"`
	Connection float64 `json:"connection"`
}

// PoEntity is a yin-derived output entity. Attributes are in [0,1] and
// immutable once crystallized.
type PoEntity struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Function   string  `json:"function"`
	Strength   float64 `json:"strength"`
	Viscosity  float64 `json:"viscosity"`
	Connection float64 `json:"connection"`
}

// Fixed ordered name pools. Entity counts can exceed the pools (hun up to 9,
// po up to 8); indices past the end get synthesized names rather than
// failing.
var hunNames = []string{
	"Shuang Ling", "Tai Guang", "You Jing",
	"Ming Shen", "Qing Hun", "Xuan Guang", "Zhen Ling",
}

var hunFunctions = []string{
	"clarifies perception",
	"radiates vitality outward",
	"holds the thread of intent",
	"illuminates hidden pattern",
	"lifts the lighter currents",
	"turns toward the open",
	"anchors the ascending pole",
}

var poNames = []string{
	"Shi Gou", "Fu Shi", "Que Yin",
	"Tun Zei", "Fei Du", "Chu Hui", "Chou Fei",
}

var poFunctions = []string{
	"guards the resting form",
	"settles what has risen",
	"keeps the inward turn",
	"consumes what intrudes",
	"neutralizes excess",
	"clears the residue",
	"weights the descending pole",
}

// hunName returns the pooled or synthesized name for index i.
func hunName(i int) (name, function string) {
	if i < len(hunNames) {
		return hunNames[i], hunFunctions[i]
	}
	return fmt.Sprintf("Hun-%d", i+1), "emergent hun aspect"
}

// poName returns the pooled or synthesized name for index i.
func poName(i int) (name, function string) {
	if i < len(poNames) {
		return poNames[i], poFunctions[i]
	}
	return fmt.Sprintf("Po-%d", i+1), "emergent po aspect"
}
