package transport

import "github.com/efoodhub/backend/internal/models"

type AddToCartRequest struct {
	FoodID   uint   `json:"food_id"`
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

type AddToCartResponse struct {
	Message string       `json:"message"`
	Cart    *models.Cart `json:"cart"`
}

type UpdateSubCartItemRequest struct {
	SubCartItemID uint `json:"sub_cart_item_id"`
	Quantity      int  `json:"quantity"`
}

type DeleteSubCartsRequest struct {
	CartID      uint   `json:"cart_id"`
	ItemsNumber int    `json:"items_number"`
	IDs         []uint `json:"ids"`
}

type PlaceOrderRequest struct {
	SubCartID   uint   `json:"sub_cart_id"`
	AddressID   uint   `json:"address_id"`
	ShippingFee int64  `json:"shipping_fee"`
	TotalPrice  int64  `json:"total_price"`
	Payment     string `json:"payment"`
}

type MyCartResponse struct {
	Cart     *models.Cart     `json:"cart"`
	SubCarts []models.SubCart `json:"sub_carts"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateReviewRequest struct {
	OrderDetailID uint   `json:"order_detail_id"`
	Stars         int    `json:"stars"`
	Comment       string `json:"comment"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CreateFoodRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	RestaurantID uint   `json:"restaurant_id"`
	ImageRef     string `json:"image_ref"`
}

type CreateAddressRequest struct {
	ReceiverName string `json:"receiver_name"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
