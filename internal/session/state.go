package session

// Notice levels.
const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// State is everything the storefront keeps for one browser session. It is
// loaded at the start of a request and saved when the request completes.
type State struct {
	Identity Identity `json:"identity"`
	Cart     Cart     `json:"cart,omitempty"`
	Notices  []Notice `json:"notices,omitempty"`

	regenerate bool
}

// NewState returns an anonymous session with an empty cart.
func NewState() *State {
	return &State{Cart: Cart{}}
}

// SignIn replaces the identity and asks for a fresh session ID. The cart is
// kept.
func (s *State) SignIn(id Identity) {
	s.Identity = id
	s.regenerate = true
}

// Clear drops identity, cart and pending notices.
func (s *State) Clear() {
	s.Identity = Identity{}
	s.Cart = Cart{}
	s.Notices = nil
	s.regenerate = true
}

// ClearCart empties the cart.
func (s *State) ClearCart() {
	s.Cart = Cart{}
}

func (s *State) Success(message string) {
	s.Notices = append(s.Notices, Notice{Level: NoticeSuccess, Message: message})
}

func (s *State) Error(message string) {
	s.Notices = append(s.Notices, Notice{Level: NoticeError, Message: message})
}

// PopNotices returns the pending notices and forgets them.
func (s *State) PopNotices() []Notice {
	notices := s.Notices
	s.Notices = nil
	return notices
}

const localsKey = "session.state"

// Attach stores state in the request context.
func Attach(c localsSetter, state *State) {
	c.Locals(localsKey, state)
}

// FromContext returns the state attached to the request, or a fresh
// anonymous state when the session middleware did not run.
func FromContext(c localsSetter) *State {
	if state, ok := c.Locals(localsKey).(*State); ok {
		return state
	}
	state := NewState()
	c.Locals(localsKey, state)
	return state
}

type localsSetter interface {
	Locals(key interface{}, value ...interface{}) interface{}
}
