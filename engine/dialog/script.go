package dialog

// DefaultScript is the built-in demo conversation used when no script file
// is configured.
const DefaultScript = `
title = "glimmer demo"
start = "greet"

[[node]]
id = "greet"
speaker = "aya"
text = "hey! want to see something pretty?"
typing_ms = 900
pause_ms = 600
next = "offer"

[[node]]
id = "offer"
speaker = "aya"
text = "i wrote a little shader. it adapts to however fast your machine is."
typing_ms = 1400
pause_ms = 400
next = "ask"

[[node]]
id = "ask"
speaker = "you"
text = "how does it adapt?"
typing_ms = 700
pick = 0

[[node.choice]]
label = "how does it adapt?"
next = "explain"

[[node.choice]]
label = "show me already"
next = "fact"

[[node]]
id = "explain"
speaker = "aya"
text = "it counts frames every second. drop below the budget and it steps the quality down a notch; run fast enough and it steps back up."
typing_ms = 1800
pause_ms = 700
next = "fact"

[[node]]
id = "fact"
speaker = "aya"
text = "fun fact incoming, then the show starts."
typing_ms = 1000
pause_ms = 500
next = "bye"

[[node]]
id = "bye"
speaker = "aya"
text = "double-tap anytime to cycle the quality yourself. enjoy!"
typing_ms = 1200
`
