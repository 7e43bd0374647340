package validation

// Messages reported by the product rules.
const (
	MsgInvalidID      = "Id no valid"
	MsgNameRequired   = "Product name must be exists"
	MsgInvalidValue   = "Invalid value"
	MsgPriceRequired  = "Price field must be exists"
	MsgInvalidPrice   = "No valid price"
	MsgInvalidBoolean = "Invalid value (boolean)"
)

// ProductIDRules validates the :id route parameter.
func ProductIDRules() []*Chain {
	return []*Chain{
		ParamField("id").Is("isint", MsgInvalidID),
	}
}

func priceChain() *Chain {
	return BodyField("price").
		Is("isnumeric", MsgInvalidValue).
		Is("notempty", MsgPriceRequired).
		Is("positive", MsgInvalidPrice)
}

// CreateProductRules validates a product creation body.
func CreateProductRules() []*Chain {
	return []*Chain{
		BodyField("name").Is("notempty", MsgNameRequired),
		priceChain(),
		availabilityChain(),
	}
}

func availabilityChain() *Chain {
	return BodyField("availability").Optional().Is("booleanlike", MsgInvalidBoolean)
}

// AvailabilityRules validates an availability change. The flag itself may
// be omitted.
func AvailabilityRules() []*Chain {
	return []*Chain{
		ParamField("id").Is("isint", MsgInvalidID),
		availabilityChain(),
	}
}

// UpdateProductRules validates a full product update, including the id.
func UpdateProductRules() []*Chain {
	return []*Chain{
		ParamField("id").Is("isint", MsgInvalidID),
		BodyField("name").
			Is("notempty", MsgNameRequired).
			Is("isstring", MsgInvalidValue),
		priceChain(),
		BodyField("availability").Is("isboolean", MsgInvalidBoolean),
	}
}
