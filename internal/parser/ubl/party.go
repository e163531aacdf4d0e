package ubl

import (
	"github.com/beevik/etree"

	"github.com/rezonia/ubl-processor/internal/model"
)

// parseParty reads the Party inside an AccountingSupplierParty or
// AccountingCustomerParty wrapper. A missing wrapper or Party yields the
// "Unknown" placeholder instead of failing the document.
func parseParty(wrapper *etree.Element) model.Party {
	party := Child(wrapper, CAC("Party"))
	if party == nil {
		return model.UnknownParty()
	}

	taxScheme := Child(party, CAC("PartyTaxScheme"))
	legal := Child(party, CAC("PartyLegalEntity"))
	endpoint := Descendant(party, CBC("EndpointID"))

	result := model.Party{
		Name:             ChildText(Child(party, CAC("PartyName")), CBC("Name")),
		RegistrationName: ChildText(legal, CBC("RegistrationName")),
		LegalForm:        ChildText(legal, CBC("CompanyLegalForm")),
		VatID:            ChildText(taxScheme, CBC("CompanyID")),
		TaxSchemeID:      ChildText(Child(taxScheme, CAC("TaxScheme")), CBC("ID")),
		CompanyID:        ChildText(legal, CBC("CompanyID")),
		EndpointID:       Text(endpoint),
		EndpointSchemeID: Attr(endpoint, "schemeID"),
		Address:          parseAddress(Child(party, CAC("PostalAddress"))),
		Contact:          parseContact(Child(party, CAC("Contact"))),
	}

	if result.CompanyID == "" {
		result.CompanyID = ChildText(Child(party, CAC("PartyIdentification")), CBC("ID"))
	}

	return result
}

// parseAddress reads a PostalAddress or a delivery location Address
func parseAddress(e *etree.Element) *model.Address {
	if e == nil {
		return nil
	}
	return &model.Address{
		Street:           ChildText(e, CBC("StreetName")),
		AdditionalStreet: ChildText(e, CBC("AdditionalStreetName")),
		City:             ChildText(e, CBC("CityName")),
		PostalZone:       ChildText(e, CBC("PostalZone")),
		CountrySubentity: ChildText(e, CBC("CountrySubentity")),
		CountryCode:      ChildText(Child(e, CAC("Country")), CBC("IdentificationCode")),
	}
}

func parseContact(e *etree.Element) *model.Contact {
	if e == nil {
		return nil
	}
	c := model.Contact{
		Name:  ChildText(e, CBC("Name")),
		Phone: ChildText(e, CBC("Telephone")),
		Email: ChildText(e, CBC("ElectronicMail")),
	}
	if c.Name == "" && c.Phone == "" && c.Email == "" {
		return nil
	}
	return &c
}

func parseDelivery(e *etree.Element) *model.Delivery {
	if e == nil {
		return nil
	}
	location := Child(e, CAC("DeliveryLocation"))
	return &model.Delivery{
		ActualDeliveryDate: ChildText(e, CBC("ActualDeliveryDate")),
		LocationID:         ChildText(location, CBC("ID")),
		PartyName:          ChildText(ChildPath(e, CAC("DeliveryParty"), CAC("PartyName")), CBC("Name")),
		Address:            parseAddress(Child(location, CAC("Address"))),
	}
}
