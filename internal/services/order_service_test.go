package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ivr/internal/models"
	"ivr/internal/repositories"
	"ivr/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	orders  *repositories.MockOrderRepository
	users   *repositories.MockUserRepository
	carts   *services.CartService
	service *services.OrderService
}

func newOrderFixture(publisher services.EventPublisher) orderFixture {
	f := orderFixture{
		orders: repositories.NewMockOrderRepository(),
		users:  repositories.NewMockUserRepository(),
		carts:  services.NewCartService(repositories.NewMockCartRepository()),
	}
	f.service = services.NewOrderService(f.orders, f.users, f.carts, publisher)
	return f
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestOrderService_PlaceOrderClearsCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(nil)

	line := models.CartLine{ItemID: "pizza", Quantity: 2, Price: 35}
	_, err := f.carts.AddItem(ctx, "u1", line)
	require.NoError(t, err)

	order, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{
		UserID:          "u1",
		Items:           []models.CartLine{line},
		Total:           70,
		Type:            "delivery",
		PaymentMethod:   "cash",
		MobileNumber:    "0500000000",
		DeliveryAddress: strPtr("12 King Fahd Rd"),
		CustomerName:    "Amal",
		CustomerEmail:   "amal@example.com",
		CustomerAddress: "Riyadh",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())

	cart, err := f.carts.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.EmptyCart(), cart)

	stored, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CartLine{line}, stored.Items)
	assert.Equal(t, 70.0, stored.Total)
	require.NotNil(t, stored.DeliveryAddress)
	assert.Equal(t, "12 King Fahd Rd", *stored.DeliveryAddress)
}

func TestOrderService_PlaceOrderSparseOptionalFields(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(nil)

	order, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{
		UserID:          "u1",
		Type:            "dine-in",
		DeliveryAddress: strPtr(""),
		NumberOfPeople:  intPtr(0),
	})
	require.NoError(t, err)
	assert.Nil(t, order.DeliveryAddress)
	assert.Nil(t, order.NumberOfPeople)
	assert.Nil(t, order.PickupTime)
	assert.NotNil(t, order.Items)

	body, err := json.Marshal(order)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "deliveryAddress")
	assert.NotContains(t, string(body), "numberOfPeople")
	assert.NotContains(t, string(body), "pickupTime")

	order, err = f.service.PlaceOrder(ctx, services.PlaceOrderInput{
		UserID:         "u1",
		Type:           "dine-in",
		NumberOfPeople: intPtr(4),
		PickupTime:     strPtr("19:30"),
	})
	require.NoError(t, err)
	require.NotNil(t, order.NumberOfPeople)
	assert.Equal(t, 4, *order.NumberOfPeople)
	require.NotNil(t, order.PickupTime)
	assert.Equal(t, "19:30", *order.PickupTime)
}

func TestOrderService_PlaceOrderKeepsOrderWhenClearFails(t *testing.T) {
	ctx := context.Background()
	cartRepo := new(MockCartRepository)
	orders := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orders, repositories.NewMockUserRepository(), services.NewCartService(cartRepo), nil)

	cartRepo.On("DeleteByUserID", mock.Anything, "u1").Return(errors.New("timeout")).Once()

	order, err := service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: "u1", Total: 10})
	require.NoError(t, err)

	count, err := orders.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NotEmpty(t, order.ID)
	cartRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrderInsertFailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	cartRepo := new(MockCartRepository)
	service := services.NewOrderService(orderRepo, new(MockUserRepository), services.NewCartService(cartRepo), nil)

	dbErr := errors.New("write concern error")
	orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(dbErr).Once()

	_, err := service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: "u1"})
	assert.ErrorIs(t, err, dbErr)
	cartRepo.AssertNotCalled(t, "DeleteByUserID", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_PlaceOrderPublishesEvent(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockPublisher)
	f := newOrderFixture(publisher)

	publisher.On("Publish", services.EventOrderPlaced, mock.MatchedBy(func(body []byte) bool {
		var event services.OrderEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return false
		}
		return event.UserID == "u1" && event.Status == models.OrderStatusPending && event.Total == 42 && event.OrderID != ""
	})).Return(errors.New("broker down")).Once()

	// A failing broker does not fail the checkout
	_, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: "u1", Total: 42})
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(nil)

	orders, err := f.service.ListOrders(ctx)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	for _, user := range []string{"u1", "u2", "u1"} {
		_, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: user})
		require.NoError(t, err)
	}

	orders, err = f.service.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "u1", orders[0].UserID)
	assert.Equal(t, "u2", orders[1].UserID)

	mine, err := f.service.ListOrdersForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, o := range mine {
		assert.Equal(t, "u1", o.UserID)
	}

	none, err := f.service.ListOrdersForUser(ctx, "ghost")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	publisher := new(MockPublisher)
	f := newOrderFixture(publisher)

	publisher.On("Publish", services.EventOrderPlaced, mock.Anything).Return(nil).Once()
	order, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: "u1"})
	require.NoError(t, err)

	publisher.On("Publish", services.EventOrderStatusUpdated, mock.Anything).Return(nil).Twice()
	require.NoError(t, f.service.UpdateOrderStatus(ctx, order.ID, "confirmed"))
	require.NoError(t, f.service.UpdateOrderStatus(ctx, order.ID, "preparing"))

	// Same status again changes nothing and sends no event
	require.NoError(t, f.service.UpdateOrderStatus(ctx, order.ID, "preparing"))

	stored, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPreparing, stored.Status)
	publisher.AssertExpectations(t)
}

func TestOrderService_UpdateOrderStatusAcceptsAnyStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(nil)

	order, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: "u1"})
	require.NoError(t, err)

	for _, status := range []string{"completed", "delivered", "pending", "cancelled", "confirmed"} {
		require.NoError(t, f.service.UpdateOrderStatus(ctx, order.ID, status), status)

		stored, err := f.orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatus(status), stored.Status)
	}
}

func TestOrderService_UpdateOrderStatusErrors(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(nil)

	order, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: "u1"})
	require.NoError(t, err)

	err = f.service.UpdateOrderStatus(ctx, order.ID, "")
	assert.ErrorIs(t, err, services.ErrValidation)

	err = f.service.UpdateOrderStatus(ctx, "missing", "confirmed")
	assert.ErrorIs(t, err, services.ErrNotFound)

	stored, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
}

func TestOrderService_ListOrdersWithCustomerDetails(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(nil)

	user := &models.User{Email: "amal@example.com", Name: "Amal", Address: "Riyadh"}
	require.NoError(t, f.users.Create(ctx, user))

	matched, err := f.service.PlaceOrder(ctx, services.PlaceOrderInput{
		UserID:          user.ID,
		CustomerName:    "typed at checkout",
		CustomerEmail:   "old@example.com",
		CustomerAddress: "somewhere else",
	})
	require.NoError(t, err)
	_, err = f.service.PlaceOrder(ctx, services.PlaceOrderInput{UserID: "ghost", CustomerName: "Ghost"})
	require.NoError(t, err)

	orders, err := f.service.ListOrdersWithCustomerDetails(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, matched.ID, orders[0].ID)
	assert.Equal(t, "Amal", orders[0].CustomerName)
	assert.Equal(t, "amal@example.com", orders[0].CustomerEmail)
	assert.Equal(t, "Riyadh", orders[0].CustomerAddress)

	// The projection does not write back
	stored, err := f.orders.GetByID(ctx, matched.ID)
	require.NoError(t, err)
	assert.Equal(t, "typed at checkout", stored.CustomerName)
}

func TestOrderService_ListOrdersWithCustomerDetailsLooksUpEachUserOnce(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	service := services.NewOrderService(orderRepo, userRepo, newCartService(), nil)

	orderRepo.On("GetAll", mock.Anything).Return([]models.Order{
		{ID: "o1", UserID: "u1"},
		{ID: "o2", UserID: "u1"},
		{ID: "o3", UserID: ""},
	}, nil).Once()
	userRepo.On("GetByIDs", mock.Anything, []string{"u1"}).Return([]models.User{{ID: "u1", Name: "Amal"}}, nil).Once()

	orders, err := service.ListOrdersWithCustomerDetails(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	orderRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}
