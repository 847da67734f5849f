package main

import "fmt"

const examplesText = `# a fuzzy hello

~kinda int x = 42
~sorta print("x is", x)

# chance-gated blocks

~sometimes (x > 40) {
    ~sorta print("probably big")
}
~maybe (x > 0):
    x ~= x + 1

# approximate values and comparisons

y = 10~ish
~sometimes (y ~ish 10) {
    ~sorta print("close enough")
}

# fallbacks and fuzzy imports

total = x // 0 ~welp -1
~maybe import json as j ~welp math
~sorta print("total", total)

# save as demo.star.knda, then:
#   kinda transform demo.star.knda
#   kinda run demo.star.knda
#   kinda -profile chaotic -seed 7 run demo.star.knda
`

func printExamples() {
	fmt.Print(examplesText)
}
