package hexgl

// Native platforms register themselves with package platform from init.
import _ "github.com/kael-ip/hexgl/internal/wgl"
