package session

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestState_SignInKeepsCart(t *testing.T) {
	state := NewState()
	state.Cart.Add(1, 2)

	state.SignIn(CustomerIdentity(9))
	assert.True(t, state.Identity.IsCustomer())
	assert.Equal(t, uint(9), state.Identity.UserID)
	assert.Equal(t, 2, state.Cart.Quantity(1))
	assert.True(t, state.regenerate)

	state.SignIn(AdminIdentity())
	assert.True(t, state.Identity.IsAdmin())
	assert.False(t, state.Identity.IsCustomer())
	assert.Equal(t, 2, state.Cart.Quantity(1))
}

func TestState_ClearAndNotices(t *testing.T) {
	state := NewState()
	state.SignIn(CustomerIdentity(1))
	state.Cart.Add(5, 1)
	state.Success("Welcome!")
	state.Error("Invalid credentials.")

	notices := state.PopNotices()
	require.Len(t, notices, 2)
	assert.Equal(t, Notice{Level: NoticeSuccess, Message: "Welcome!"}, notices[0])
	assert.Equal(t, NoticeError, notices[1].Level)
	assert.Empty(t, state.PopNotices(), "notices are shown once")

	state.Clear()
	assert.Equal(t, Anonymous, state.Identity.Kind)
	assert.True(t, state.Cart.IsEmpty())

	state.Cart.Add(1, 1)
	state.ClearCart()
	assert.True(t, state.Cart.IsEmpty())
}

func TestState_JSONRoundTripOmitsRegenerate(t *testing.T) {
	state := NewState()
	state.SignIn(CustomerIdentity(4))
	state.Cart.Add(2, 3)

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	decoded := NewState()
	require.NoError(t, json.Unmarshal(raw, decoded))
	assert.Equal(t, state.Identity, decoded.Identity)
	assert.Equal(t, 3, decoded.Cart.Quantity(2))
	assert.False(t, decoded.regenerate)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "anonymous", Anonymous.String())
	assert.Equal(t, "customer", Customer.String())
	assert.Equal(t, "admin", Admin.String())
}

func TestFromContext(t *testing.T) {
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	fresh := FromContext(c)
	assert.Equal(t, Anonymous, fresh.Identity.Kind)
	assert.Same(t, fresh, FromContext(c))

	attached := NewState()
	attached.SignIn(AdminIdentity())
	Attach(c, attached)
	assert.Same(t, attached, FromContext(c))
}
